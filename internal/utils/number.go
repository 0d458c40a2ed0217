package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewDocumentNumber builds a human-readable unique number for contracts,
// invoices and requests, e.g. "CT-20260115-9F2A3B1C". The uuid fragment
// keeps numbers unique without a round trip to the database.
func NewDocumentNumber(prefix string) string {
	id := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), id)
}
