package fs

import "time"

// SetRename replaces the rename used to publish responses.
func (w *ResponseWriter) SetRename(rename func(oldpath, newpath string) error) {
	w.rename = rename
}

// SetNow replaces the clock that stamps loaded tables.
func (r *CSVReader) SetNow(now func() time.Time) {
	r.now = now
}

// SetReadFile replaces the function used to read request files.
func (r *RequestReader) SetReadFile(readFile func(name string) ([]byte, error)) {
	r.readFile = readFile
}

// SetRemove replaces the function used to delete claimed requests.
func (r *RequestReader) SetRemove(remove func(name string) error) {
	r.remove = remove
}
