package common

import "fmt"

// WipeByteArray overwrites the contents of b with zeros. Used for product
// keys read from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// FormatSize renders a byte count the way the file list shows it:
// bytes below 1 KiB, one decimal KB below 1 MiB, one decimal MB above.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
