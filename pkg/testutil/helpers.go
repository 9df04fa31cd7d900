package testutil

import (
	"fmt"
	"hash/crc32"
)

// TestChecksum returns the checksum base.Scan records for content
func TestChecksum(content string) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(content)))
}
