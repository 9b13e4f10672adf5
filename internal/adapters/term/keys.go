package term

import (
	"io"
	"unicode/utf8"

	"github.com/bnema/petit/internal/events"
)

const readChunkSize = 256

type decodedKey struct {
	key events.Key
	ok  bool
}

// KeyReader decodes raw terminal bytes into canonical key names.
// Each Read chunk is decoded on its own; an escape sequence split across
// reads decodes as a lone esc followed by its remaining bytes.
type KeyReader struct {
	r       io.Reader
	buf     []byte
	pending []decodedKey
}

var _ events.KeyReader = (*KeyReader)(nil)

func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r, buf: make([]byte, readChunkSize)}
}

func (k *KeyReader) ReadKey() (events.Key, error) {
	for len(k.pending) == 0 {
		n, err := k.r.Read(k.buf)
		if n > 0 {
			k.pending = append(k.pending, decodeKeys(k.buf[:n])...)
		}
		if err != nil && len(k.pending) == 0 {
			return "", err
		}
	}

	next := k.pending[0]
	k.pending = k.pending[1:]
	if !next.ok {
		return "", events.ErrUndecodable
	}
	return next.key, nil
}

func decodeKeys(data []byte) []decodedKey {
	keys := make([]decodedKey, 0, len(data))

	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 0x1b:
			key, consumed := decodeEscape(data[i:])
			keys = append(keys, key)
			i += consumed
			continue
		case b == '\r' || b == '\n':
			keys = append(keys, known("enter"))
		case b == '\t':
			keys = append(keys, known("tab"))
		case b == 0x7f || b == 0x08:
			keys = append(keys, known("backspace"))
		case b == ' ':
			keys = append(keys, known("space"))
		case b >= 0x01 && b <= 0x1a:
			keys = append(keys, known(events.Key("ctrl+"+string(rune('a'+b-1)))))
		case b < 0x20:
			keys = append(keys, decodedKey{})
		default:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				keys = append(keys, decodedKey{})
				i++
				continue
			}
			keys = append(keys, known(events.Key(string(r))))
			i += size
			continue
		}
		i++
	}

	return keys
}

var csiKeys = map[byte]events.Key{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
	'Z': "shift+tab",
}

var tildeKeys = map[string]events.Key{
	"1": "home",
	"2": "insert",
	"3": "delete",
	"4": "end",
	"5": "pgup",
	"6": "pgdown",
	"7": "home",
	"8": "end",
}

// decodeEscape decodes a sequence starting at ESC and reports how many bytes it used.
func decodeEscape(seq []byte) (decodedKey, int) {
	if len(seq) == 1 {
		return known("esc"), 1
	}

	switch seq[1] {
	case '[':
		return decodeCSI(seq)
	case 'O':
		if len(seq) < 3 {
			return decodedKey{}, len(seq)
		}
		if key, ok := csiKeys[seq[2]]; ok {
			return known(key), 3
		}
		return decodedKey{}, 3
	case 0x1b:
		return known("esc"), 1
	default:
		r, size := utf8.DecodeRune(seq[1:])
		if r == utf8.RuneError || r < 0x20 {
			return known("esc"), 1
		}
		return known(events.Key("alt+" + string(r))), 1 + size
	}
}

func decodeCSI(seq []byte) (decodedKey, int) {
	end := 2
	for end < len(seq) && (seq[end] < 0x40 || seq[end] > 0x7e) {
		end++
	}
	if end == len(seq) {
		return decodedKey{}, len(seq)
	}

	params := string(seq[2:end])
	final := seq[end]
	consumed := end + 1

	if final == '~' {
		if key, ok := tildeKeys[params]; ok {
			return known(key), consumed
		}
		return decodedKey{}, consumed
	}
	if params == "" {
		if key, ok := csiKeys[final]; ok {
			return known(key), consumed
		}
	}

	return decodedKey{}, consumed
}

func known(key events.Key) decodedKey {
	return decodedKey{key: key, ok: true}
}
