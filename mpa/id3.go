// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	id3v2HeaderSize = 10
	id3v1Size       = 128
	id3v2FooterFlag = 0x10
)

// Tag holds the fields of an ID3v1 tag found at the end of a stream.
type Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Track   int // 0 when the tag is ID3v1.0
	Genre   int
}

// id3v2Size returns the full length of an ID3v2 tag starting at b,
// header and optional footer included.
func id3v2Size(b []byte) (int, bool) {
	if len(b) < id3v2HeaderSize || !bytes.HasPrefix(b, []byte("ID3")) {
		return 0, false
	}
	// version bytes are never 0xff, size bytes are synchsafe
	if b[3] == 0xff || b[4] == 0xff {
		return 0, false
	}
	size := 0
	for _, c := range b[6:10] {
		if c&0x80 != 0 {
			return 0, false
		}
		size = size<<7 | int(c)
	}
	size += id3v2HeaderSize
	if b[5]&id3v2FooterFlag != 0 {
		size += id3v2HeaderSize
	}

	return size, true
}

// parseID3v1 decodes a 128 byte ID3v1 or ID3v1.1 tag.
func parseID3v1(b []byte) (*Tag, bool) {
	if len(b) != id3v1Size || !bytes.HasPrefix(b, []byte("TAG")) {
		return nil, false
	}

	t := &Tag{
		Title:  latin1(b[3:33]),
		Artist: latin1(b[33:63]),
		Album:  latin1(b[63:93]),
		Year:   latin1(b[93:97]),
		Genre:  int(b[127]),
	}

	comment := b[97:127]
	if comment[28] == 0 && comment[29] != 0 {
		t.Track = int(comment[29])
		comment = comment[:28]
	}
	t.Comment = latin1(comment)

	return t, true
}

func latin1(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}

	return strings.TrimRight(string(s), " ")
}
