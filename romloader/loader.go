// This file is part of s100emu.
//
// s100emu is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// s100emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with s100emu.  If not, see <https://www.gnu.org/licenses/>.

package romloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/s100emu/s100emu/curated"
)

// Error patterns raised by Load.
const (
	ErrUnsupportedScheme = "romloader: unsupported URL scheme (%s)"
	ErrHashMismatch      = "romloader: %s does not match expected hash %s"
)

// Loader specifies a single byte image to be loaded into a data card, and
// carries the result of doing so.
type Loader struct {
	// Filename of the image to load: a local path, or an http(s) URL.
	Filename string

	// Hash, if non-empty, is checked against the sha1 of the loaded data
	// after Load() succeeds. After a successful load the field holds the
	// hash of whatever was actually loaded.
	Hash string

	// Data is the loaded image, valid once Load() has returned nil.
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns the base filename with its extension removed, suitable
// for use as a card's Name.
func (rl Loader) ShortName() string {
	short := path.Base(rl.Filename)
	return strings.TrimSuffix(short, path.Ext(rl.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (rl Loader) HasLoaded() bool {
	return len(rl.Data) > 0
}

// Load reads the image data into the Data field. Filenames with an http or
// https scheme are fetched over HTTP and filenames with no scheme are treated
// as a local file path; any other scheme is rejected with
// ErrUnsupportedScheme.
func (rl *Loader) Load() error {
	if len(rl.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(rl.Filename); err == nil {
		scheme = u.Scheme
	}

	var err error
	switch scheme {
	case "http", "https":
		rl.Data, err = loadHTTP(rl.Filename)
	case "file", "":
		rl.Data, err = loadFile(rl.Filename)
	default:
		return curated.Errorf(ErrUnsupportedScheme, scheme)
	}
	if err != nil {
		return err
	}

	hash := fmt.Sprintf("%x", sha1.Sum(rl.Data))
	if rl.Hash != "" && rl.Hash != hash {
		return curated.Errorf(ErrHashMismatch, hash, rl.Hash)
	}
	rl.Hash = hash

	return nil
}

func loadHTTP(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, curated.Errorf("romloader: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, curated.Errorf("romloader: %v", err)
	}
	return data, nil
}

func loadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("romloader: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, curated.Errorf("romloader: %v", err)
	}
	return data, nil
}
