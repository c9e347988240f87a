// file: internals/docstore/fieldpath.go
package docstore

import (
	"reflect"
	"strings"
)

/* =========================
   Dotted field path utils
=========================
Path "a.b.c" menunjuk nested map. Segmen perantara yang belum ada
dibuat sebagai map baru (kecuali untuk Delete: path yang tidak ada = no-op).
*/

// GetField membaca nilai pada dotted path. ok=false bila path tidak ada.
func GetField(doc Document, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := any(doc)
	for _, p := range parts {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return nil, false
		}
		v, exists := m[p]
		if !exists {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// SetField menulis nilai pada dotted path, membuat map perantara bila perlu.
func SetField(doc Document, path string, value any) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// DeleteField menghapus field pada dotted path (no-op bila tidak ada).
func DeleteField(doc Document, path string) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}

// ApplyFields menerapkan partial update (dotted paths + sentinel) ke dokumen.
func ApplyFields(doc Document, fields map[string]any) {
	for path, v := range fields {
		switch sv := v.(type) {
		case deleteSentinel:
			DeleteField(doc, path)
		case arrayUnionSentinel:
			applyArrayUnion(doc, path, sv.values)
		default:
			SetField(doc, path, v)
		}
	}
}

func applyArrayUnion(doc Document, path string, values []any) {
	existing, _ := GetField(doc, path)
	arr, _ := existing.([]any)
	for _, v := range values {
		if !containsValue(arr, v) {
			arr = append(arr, v)
		}
	}
	SetField(doc, path, arr)
}

// containsValue: deep-equality membership check untuk ArrayUnion.
func containsValue(arr []any, v any) bool {
	for _, e := range arr {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}
