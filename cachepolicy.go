package akonadi

import (
	"bytes"
	"math"
	"strconv"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// ParseCachePolicy parses a cache policy list starting at start, optionally
// preceded by its CACHEPOLICY label. Keys that are absent keep the defaults of
// models.NewCachePolicy; unknown keys are ignored. It returns the offset after
// the list.
func ParseCachePolicy(data []byte, start int) (models.CachePolicy, int, error) {
	pos := imapparser.SkipWhitespace(data, start)
	if pos >= len(data) {
		return models.CachePolicy{}, start, parseErrorf(constants.ErrMalformedCachePolicy, pos, constants.ErrUnexpectedEnd, "parameter list")
	}
	if label := []byte(constants.KeyCachePolicy); bytes.HasPrefix(data[pos:], label) {
		if rest := data[pos+len(label):]; len(rest) == 0 || rest[0] == ' ' || rest[0] == '(' {
			pos += len(label)
		}
	}

	params, next, err := imapparser.ParseParenthesizedList(data, pos)
	if err != nil {
		return models.CachePolicy{}, start, parseErrorf(constants.ErrMalformedCachePolicy, pos, err, "parameter list")
	}

	policy := models.NewCachePolicy()
	for i := 0; i+1 < len(params); i += 2 {
		key := string(params[i])
		value := params[i+1]

		switch key {
		case constants.KeyInherit:
			policy.InheritFromParent = string(value) == "true"
		case constants.KeyInterval:
			if policy.IntervalCheckTime, err = toInt(value); err != nil {
				return models.CachePolicy{}, start, parseErrorf(constants.ErrMalformedCachePolicy, pos, err, "%s", key)
			}
		case constants.KeyCacheTimeout:
			if policy.CacheTimeout, err = toInt(value); err != nil {
				return models.CachePolicy{}, start, parseErrorf(constants.ErrMalformedCachePolicy, pos, err, "%s", key)
			}
		case constants.KeySyncOnDemand:
			policy.SyncOnDemand = string(value) == "true"
		case constants.KeyLocalParts:
			if len(value) == 0 {
				policy.LocalParts = nil
				continue
			}
			parts, _, err := imapparser.ParseParenthesizedList(value, 0)
			if err != nil {
				return models.CachePolicy{}, start, parseErrorf(constants.ErrMalformedCachePolicy, pos, err, "%s", key)
			}
			policy.LocalParts = nil
			for _, part := range parts {
				policy.LocalParts = append(policy.LocalParts, string(part))
			}
		}
	}

	return policy, next, nil
}

// CachePolicyToWire returns the canonical wire form of policy. Every field is
// written, in a fixed order, whether or not it holds its default.
func CachePolicyToWire(policy models.CachePolicy) []byte {
	var b bytes.Buffer
	b.WriteString(constants.KeyCachePolicy + " (")
	b.WriteString(constants.KeyInherit + " " + strconv.FormatBool(policy.InheritFromParent))
	b.WriteString(" " + constants.KeyInterval + " " + strconv.Itoa(policy.IntervalCheckTime))
	b.WriteString(" " + constants.KeyCacheTimeout + " " + strconv.Itoa(policy.CacheTimeout))
	b.WriteString(" " + constants.KeySyncOnDemand + " " + strconv.FormatBool(policy.SyncOnDemand))
	b.WriteString(" " + constants.KeyLocalParts + " (")
	for i, part := range policy.LocalParts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.Write(imapparser.Astring([]byte(part)))
	}
	b.WriteString("))")
	return b.Bytes()
}

func toInt(token []byte) (int, error) {
	n, err := imapparser.ToNumber(token)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, strconv.ErrRange
	}
	return int(n), nil
}
