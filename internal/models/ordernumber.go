package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewOrderNumber generates a customer-facing order number of the form
// PDC-<YYYYMMDD>-<8 uppercase hex chars>. Uniqueness is not guaranteed here;
// the repo retries on a duplicate at insert time.
func NewOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform is broken; fall back to
		// the nanosecond clock rather than aborting order creation.
		return fmt.Sprintf("PDC-%s-%08X", time.Now().UTC().Format("20060102"), time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("PDC-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(b)))
}
