// file: internals/docstore/codec.go
package docstore

import (
	"github.com/bytedance/sonic"
)

/* =========================
   Typed <-> Document codec
=========================
Dokumen disimpan sebagai map[string]any; model fitur memakai struct typed
dengan json tag. Konversi lewat sonic (encoder yang sama dengan Fiber).
*/

// DataTo meng-unmarshal dokumen ke struct tujuan.
func DataTo(doc Document, out any) error {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, out)
}

// DataFrom membuat dokumen dari struct (json tag menentukan key).
func DataFrom(in any) (Document, error) {
	raw, err := sonic.Marshal(in)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
