// Package payment builds Robokassa payment links. The signature payload
// layout and the query parameter set are an external wire contract with
// the processor and must not change.
package payment

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/infsectest/ist-detector/internal/session"
)

// Robokassa generates payment URLs for the merchant account.
type Robokassa struct {
	MerchantLogin       string
	Password1           string
	BaseURL             string
	DescriptionTemplate string
}

// FormatPrice renders a ruble amount with spaces as thousands
// separators: 4500 -> "4 500".
func FormatPrice(price int) string {
	digits := strconv.Itoa(price)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// signature computes the md5 checksum Robokassa expects over the
// colon-joined payload. Field order and separators are fixed by the
// processor; InvId is always 0 here.
func (r *Robokassa) signature(price int, phone string, telegramID int64) string {
	payload := fmt.Sprintf("%s:%d:0:%s:Shp_phone=%s:Shp_telegram=%d",
		r.MerchantLogin, price, r.Password1, phone, telegramID)
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// description substitutes the template placeholders and percent-encodes
// the result, leaving "/" intact.
func (r *Robokassa) description(price int, service, target string) string {
	raw := strings.NewReplacer(
		"{price}", FormatPrice(price),
		"{service}", service,
		"{target}", target,
	).Replace(r.DescriptionTemplate)
	escaped := url.QueryEscape(raw)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return escaped
}

// Link builds the payment URL for a completed request. The target reads
// "<network>: <link>" with the plan label appended in parentheses when
// one was chosen.
func (r *Robokassa) Link(req *session.Request) string {
	target := fmt.Sprintf("%s: %s", req.SocialNet, req.Link)
	if req.PlanLabel != "" {
		target = fmt.Sprintf("%s (%s)", target, req.PlanLabel)
	}
	sig := r.signature(req.Price, req.Phone, req.UserID)
	desc := r.description(req.Price, req.ServiceLabel, target)
	return fmt.Sprintf(
		"%s?MerchantLogin=%s&InvId=0&Culture=ru&Encoding=utf-8&Shp_phone=%s&Shp_telegram=%d&OutSum=%d&Description=%s&SignatureValue=%s",
		r.BaseURL, r.MerchantLogin, req.Phone, req.UserID, req.Price, desc, sig,
	)
}
