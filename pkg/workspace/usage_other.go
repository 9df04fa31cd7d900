//go:build !unix

package workspace

// identify cannot see inodes here, so every file counts as unique
func identify(string) (fileIdentity, error) {
	return fileIdentity{nlink: 1}, nil
}
