// file: internals/configs/settings_cache.go
package configs

import (
	"context"
	"sync"
	"time"
)

/* =========================
   Portal settings cache
=========================
Pengganti global config cache lama: cache eksplisit {value, fetchedAt}
dengan clock yang di-inject supaya expiry bisa dites deterministik.
*/

type PortalSettings struct {
	InstituteName string `json:"institute_name"`
	Currency      string `json:"currency"`
	ReceiptFooter string `json:"receipt_footer"`
	Maintenance   bool   `json:"maintenance"`
}

func DefaultPortalSettings() PortalSettings {
	return PortalSettings{
		InstituteName: "Pelatihanku",
		Currency:      "IDR",
		ReceiptFooter: "Terima kasih telah bergabung.",
	}
}

type SettingsCache struct {
	mu        sync.Mutex
	value     PortalSettings
	fetchedAt time.Time
	hasValue  bool

	now   func() time.Time
	fetch func(ctx context.Context) (PortalSettings, error)
}

// NewSettingsCache: now boleh nil (default time.Now); fetch wajib.
func NewSettingsCache(fetch func(ctx context.Context) (PortalSettings, error), now func() time.Time) *SettingsCache {
	if now == nil {
		now = time.Now
	}
	return &SettingsCache{now: now, fetch: fetch}
}

// GetOrRefresh mengembalikan value cache bila masih segar (< ttl), kalau
// tidak fetch ulang. Fetch gagal saat cache masih punya value lama ->
// value lama dipakai (stale lebih baik daripada error).
func (c *SettingsCache) GetOrRefresh(ctx context.Context, ttl time.Duration) (PortalSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasValue && c.now().Sub(c.fetchedAt) < ttl {
		return c.value, nil
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		if c.hasValue {
			return c.value, nil
		}
		return PortalSettings{}, err
	}

	c.value = fresh
	c.fetchedAt = c.now()
	c.hasValue = true
	return c.value, nil
}

// Invalidate memaksa fetch pada panggilan berikutnya (dipakai setelah
// admin mengubah settings).
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasValue = false
}
