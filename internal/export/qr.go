// README: Per-table QR codes pointing at the ordering page.
package export

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// TableCodePNG renders the ordering URL for a table as a PNG QR code.
func TableCodePNG(publicBaseURL string, tableNumber, size int) ([]byte, error) {
	if tableNumber <= 0 {
		return nil, fmt.Errorf("invalid table number %d", tableNumber)
	}
	if size <= 0 {
		size = 256
	}
	url := fmt.Sprintf("%s/table/%d", strings.TrimRight(publicBaseURL, "/"), tableNumber)
	return qrcode.Encode(url, qrcode.Medium, size)
}
