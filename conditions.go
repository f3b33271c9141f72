package royalty

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/royalty/errors"
)

var conditionSection = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,8}$`)

// Condition describes who can authorize an action. It is the byte form of
//
//   <extension>/<type>/<data>
//
// Every signature produces a condition of its public key. Extensions derive
// conditions for the accounts they control, for example a track vault.
type Condition []byte

// NewCondition builds a condition from its three sections.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+2+len(data))
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse returns the three sections of the condition. The extension and the
// type are 3 to 8 characters long, data must not be empty and may contain
// any byte.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	parts := bytes.SplitN(c, []byte{'/'}, 3)
	if len(parts) != 3 || len(parts[2]) == 0 ||
		!conditionSection.Match(parts[0]) || !conditionSection.Match(parts[1]) {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(parts[0]), string(parts[1]), parts[2], nil
}

func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the digest of the condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String keeps the extension and the type readable and hex encodes data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the String form. An empty string is a nil condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	sections := strings.Split(s, "/")
	if len(sections) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q", s)
	}
	data, err := hex.DecodeString(sections[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	return NewCondition(sections[0], sections[1], data), nil
}
