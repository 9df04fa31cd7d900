//go:build unix

package workspace

import "golang.org/x/sys/unix"

func identify(path string) (fileIdentity, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return fileIdentity{}, err
	}
	return fileIdentity{
		key:    inodeKey{dev: uint64(st.Dev), ino: uint64(st.Ino)},
		nlink:  uint64(st.Nlink),
		blocks: int64(st.Blocks),
		ok:     true,
	}, nil
}
