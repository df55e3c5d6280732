// internal/domain/whatsapp/intent.go
package whatsapp

import "strings"

var purchaseKeywords = []string{"quiero", "comprar", "precio", "cuanto", "disponible", "vender"}

// IsPurchaseIntent reports whether text contains any purchase keyword,
// ignoring case.
func IsPurchaseIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range purchaseKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
