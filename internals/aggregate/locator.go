// file: internals/aggregate/locator.go
package aggregate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pelatihanku_backend/internals/docstore"
)

/* =========================
   Derived-Record Locator
=========================
Identifier komposit:
- batch  : <prefix>-<code>-<year>-<suffix>, base doc = 3 segmen pertama
- harian : <DD>-<MM>-<YY>-<batchID> (attendance & assignments)
*/

const (
	idSep          = "-"
	dailyDateParts = 3
	batchBaseParts = 3
)

// DateLayout: format date part pada id harian (DD-MM-YY).
const DateLayout = "02-01-06"

// EncodeBatchID menyusun identifier komposit dari base + suffix.
func EncodeBatchID(baseID, suffix string) string {
	return baseID + idSep + suffix
}

// DecodeBatchID memecah identifier komposit: base = 3 segmen pertama,
// suffix = segmen terakhir.
func DecodeBatchID(batchID string) (baseID, suffix string, err error) {
	parts := strings.Split(batchID, idSep)
	if len(parts) < batchBaseParts+1 {
		return "", "", fmt.Errorf("%w: batch id %q is not prefix-code-year-suffix", ErrValidation, batchID)
	}
	baseID = strings.Join(parts[:batchBaseParts], idSep)
	suffix = parts[len(parts)-1]
	if suffix == "" {
		return "", "", fmt.Errorf("%w: batch id %q has empty suffix", ErrValidation, batchID)
	}
	return baseID, suffix, nil
}

// ResolveBatch memetakan batch id komposit ke dokumen base + entry yang
// suffix-nya cocok. ErrNotFound bila base doc atau entry tidak ada.
func ResolveBatch(ctx context.Context, store docstore.Store, batchID string) (BatchDoc, BatchEntry, error) {
	baseID, suffix, err := DecodeBatchID(batchID)
	if err != nil {
		return BatchDoc{}, BatchEntry{}, err
	}

	raw, err := store.Get(ctx, ColBatches, baseID)
	if err != nil {
		if err == docstore.ErrNotFound {
			return BatchDoc{}, BatchEntry{}, fmt.Errorf("%w: batch %s", ErrNotFound, baseID)
		}
		return BatchDoc{}, BatchEntry{}, err
	}

	var doc BatchDoc
	if err := docstore.DataTo(raw, &doc); err != nil {
		return BatchDoc{}, BatchEntry{}, err
	}
	for _, e := range doc.Entries {
		if e.Suffix == suffix {
			return doc, e, nil
		}
	}
	return BatchDoc{}, BatchEntry{}, fmt.Errorf("%w: batch %s has no entry with suffix %q", ErrNotFound, baseID, suffix)
}

// DailyRecordID: id dokumen attendance/assignment harian.
func DailyRecordID(date time.Time, batchID string) string {
	return date.Format(DateLayout) + idSep + batchID
}

// DatePart mengambil "<DD>-<MM>-<YY>" dari id harian (membuang segmen batch).
func DatePart(id string) string {
	parts := strings.Split(id, idSep)
	if len(parts) < dailyDateParts {
		return id
	}
	return strings.Join(parts[:dailyDateParts], idSep)
}

// IsFirstForDate: true bila belum ada dokumen lain di collection tsb untuk
// batch + tanggal yang sama (dokumen yang sedang ditulis di-exclude).
func IsFirstForDate(ctx context.Context, store docstore.Store, collection, batchID, datePart, excludeID string) (bool, error) {
	snaps, err := store.Query(ctx, collection, map[string]any{"batch_id": batchID}, 0)
	if err != nil {
		return false, err
	}
	for _, s := range snaps {
		if s.ID == excludeID {
			continue
		}
		if DatePart(s.ID) == datePart {
			return false, nil
		}
	}
	return true, nil
}
