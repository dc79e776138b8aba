package email

import (
	"fmt"
	"html"

	"docintake/internal/port"
)

// ReceiptSubject returns the subject line for a submission receipt.
func ReceiptSubject(r port.SubmissionReceipt) string {
	return fmt.Sprintf("Document received: %s %s (%s)", r.Product, r.DocType, r.Supplier)
}

// ReceiptText returns the plain-text body of a submission receipt.
func ReceiptText(r port.SubmissionReceipt) string {
	return fmt.Sprintf("A document was submitted through the intake form.\n\n"+
		"Record ID: %s\nProduct: %s\nDocument Type: %s\nSupplier: %s\nFilename: %s\n",
		r.RecordID, r.Product, r.DocType, r.Supplier, r.Filename)
}

// ReceiptHTML returns the HTML body of a submission receipt.
func ReceiptHTML(r port.SubmissionReceipt) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document received</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Record ID</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Product</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Document Type</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Supplier</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Filename</td><td>%s</td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(r.RecordID),
		html.EscapeString(r.Product),
		html.EscapeString(r.DocType),
		html.EscapeString(r.Supplier),
		html.EscapeString(r.Filename),
	)
}
