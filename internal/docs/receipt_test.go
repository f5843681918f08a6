package docs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
)

func sampleReceipt() Receipt {
	detail := domain.ComputePrice(2, 3, 1000, domain.HotelThreeStar)
	return NewReceipt(models.BookingPayload{
		PackageName: "Golden Triangle",
		PackageDays: 3,
		People:      2,
		StartDate:   "2026-09-15T10:30:00Z",
		Hotel:       domain.HotelThreeStar,
	}, detail, 500, true)
}

func TestReceiptPDF(t *testing.T) {
	r := sampleReceipt()
	data, filename, err := r.PDF()
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if !strings.HasPrefix(filename, "RECEIPT_Golden_Triangle_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestReceiptNumbersAreUnique(t *testing.T) {
	a := sampleReceipt()
	b := sampleReceipt()
	if a.ReceiptNo == b.ReceiptNo {
		t.Fatalf("receipt numbers collide: %s", a.ReceiptNo)
	}
	if !strings.HasPrefix(a.ReceiptNo, "RCPT-") {
		t.Fatalf("unexpected receipt number %q", a.ReceiptNo)
	}
}

func TestReceiptWrite(t *testing.T) {
	dir := t.TempDir()
	path, err := sampleReceipt().Write(dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("written outside dir: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty receipt file")
	}
}
