package db

import "fmt"

const (
	keyView         = "view"
	keyTagFilter    = "tag_filter"
	keyStatusFilter = "status_filter"
)

// Preferences is the UI state restored on the next start
type Preferences struct {
	View         string
	TagFilter    string
	StatusFilter string
}

// LoadPreferences returns the saved preferences. Unset keys come back empty.
func (db *DB) LoadPreferences() (Preferences, error) {
	var p Preferences
	for key, dst := range map[string]*string{
		keyView:         &p.View,
		keyTagFilter:    &p.TagFilter,
		keyStatusFilter: &p.StatusFilter,
	} {
		v, err := db.GetSetting(key)
		if err != nil {
			return Preferences{}, fmt.Errorf("load setting %s: %w", key, err)
		}
		*dst = v
	}
	return p, nil
}

// SavePreferences writes all preference keys in one transaction
func (db *DB) SavePreferences(p Preferences) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, kv := range [][2]string{
		{keyView, p.View},
		{keyTagFilter, p.TagFilter},
		{keyStatusFilter, p.StatusFilter},
	} {
		if _, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save setting %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
