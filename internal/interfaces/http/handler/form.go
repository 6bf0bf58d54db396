package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	"github.com/tinymillion/backend/internal/domain/catalog"
)

// imageFields are the multipart fields product images are uploaded under
var imageFields = []string{"image1", "image2", "image3", "image4"}

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files
const multipartMemory = 32 << 20

// productForm reads product submissions, which arrive either as multipart
// forms (with image files) or as JSON documents. Field values are read the
// same way regardless of the encoding.
type productForm struct {
	doc    map[string]any
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func readProductForm(c *gin.Context) (*productForm, error) {
	f := &productForm{}
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		f.values = c.Request.MultipartForm.Value
		f.files = c.Request.MultipartForm.File
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		f.values = c.Request.PostForm
	default:
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			return f, nil
		}
		if err := json.NewDecoder(c.Request.Body).Decode(&f.doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
	}
	return f, nil
}

// Has reports whether the field was sent at all
func (f *productForm) Has(key string) bool {
	if _, ok := f.doc[key]; ok {
		return true
	}
	_, ok := f.values[key]
	return ok
}

// String returns the field as text. Numbers and booleans sent as JSON are
// formatted the way a form would carry them.
func (f *productForm) String(key string) string {
	if v, ok := f.doc[key]; ok {
		return scalarText(v)
	}
	if vs := f.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Strings returns every value of the field: each element of a JSON array,
// or each repetition of a form field
func (f *productForm) Strings(key string) []string {
	if v, ok := f.doc[key]; ok {
		if arr, isArr := v.([]any); isArr {
			out := make([]string, 0, len(arr))
			for _, item := range arr {
				out = append(out, scalarText(item))
			}
			return out
		}
		if s := scalarText(v); s != "" {
			return []string{s}
		}
		return nil
	}
	return f.values[key]
}

// Images collects image URLs from the images and image fields
func (f *productForm) Images() []string {
	return catalog.SplitList(append(f.Strings("images"), f.Strings("image")...)...)
}

// Sizes reads the first of keys that yields sizes. A single value may be a
// JSON array string or a comma list.
func (f *productForm) Sizes(keys ...string) []string {
	for _, key := range keys {
		vals := f.Strings(key)
		var sizes []string
		if len(vals) == 1 {
			sizes = catalog.ParseSizes(vals[0])
		} else {
			sizes = catalog.SplitList(vals...)
		}
		if len(sizes) > 0 {
			return sizes
		}
	}
	return []string{}
}

// Int reads an integer field; malformed or missing values yield zero
func (f *productForm) Int(key string) int {
	raw := strings.TrimSpace(f.String(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(fl)
	}
	return 0
}

// Uploads opens the image files in field order. The returned func closes
// them and must be called once the uploads are consumed.
func (f *productForm) Uploads() ([]catalogapp.ImageUpload, func(), error) {
	var (
		uploads []catalogapp.ImageUpload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}
	for _, field := range imageFields {
		for _, fh := range f.files[field] {
			file, err := fh.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, fmt.Errorf("open %s: %w", field, err)
			}
			opened = append(opened, file)
			uploads = append(uploads, catalogapp.ImageUpload{
				Field:       field,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Body:        file,
			})
		}
	}
	return uploads, closeAll, nil
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
