package akonadi

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/logger"
	"github.com/kdepim/akonadi.go/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fetchLine = `* 1 FETCH (UID 42 REV 3 REMOTEID "123" REMOTEREVISION "r1" COLLECTIONID 7 ` +
	`MIMETYPE "message/rfc822" FLAGS (\Seen $ATTACHMENT) SIZE 512 ` +
	`DATETIME "08-Mar-2009 17:04:05 +0100" PLD:RFC822[1] {5}` + "\r\n" + `hello ` +
	`ATR ENTITYDISPLAY "(\"Subject\" \"\")" X-UNKNOWN foo)` + "\r\n"

func TestSplitFetchResponse(t *testing.T) {
	n, tokens, err := SplitFetchResponse([]byte(fetchLine))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, tokens, 25)
	assert.Equal(t, "UID", string(tokens[0]))
	assert.Equal(t, `(\Seen $ATTACHMENT)`, string(tokens[13]))
	assert.Equal(t, "hello", string(tokens[19]))
}

func TestSplitFetchResponse_Errors(t *testing.T) {
	for _, line := range []string{
		"",
		"OK done",
		"* x FETCH ()",
		"* 1 LIST ()",
		"* 1 FETCH",
		"* 1 FETCH (UID",
		"* 1 FETCH (UID 1 PLD:RFC822 {9223372036854775800}\r\nabc)",
		"* 1 FETCH (UID 1 PLD:RFC822 {9223372036854775807}\nx)",
	} {
		t.Run(line, func(t *testing.T) {
			_, _, err := SplitFetchResponse([]byte(line))
			assert.ErrorIs(t, err, constants.ErrMalformedFetchResult)
		})
	}
}

func TestParseItemFetchResult(t *testing.T) {
	_, tokens, err := SplitFetchResponse([]byte(fetchLine))
	require.NoError(t, err)

	var item models.Item
	require.NoError(t, NewProtocolHelper().ParseItemFetchResult(tokens, &item))

	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, 3, item.Revision)
	assert.Equal(t, "123", item.RemoteID)
	assert.Equal(t, "r1", item.RemoteRevision)
	assert.Equal(t, int64(7), item.StorageCollectionID)
	assert.Equal(t, "message/rfc822", item.MimeType)
	assert.Equal(t, models.Flags{"$ATTACHMENT", `\Seen`}, item.Flags)
	assert.Equal(t, int64(512), item.Size)
	assert.True(t, item.ModificationTime.Equal(time.Date(2009, 3, 8, 16, 4, 5, 0, time.UTC)))

	payload, ok := item.Payload("RFC822")
	require.True(t, ok)
	assert.Equal(t, "hello", string(payload))
	assert.Equal(t, 1, item.Parts["RFC822"].Version)
	assert.False(t, item.Parts["RFC822"].External)

	display, ok := item.Attribute(models.DisplayAttributeType)
	require.True(t, ok)
	assert.Equal(t, &models.DisplayAttribute{DisplayName: "Subject"}, display)
	assert.Len(t, item.Attributes, 1)
}

func TestParseItemFetchResult_Minimal(t *testing.T) {
	var buf bytes.Buffer
	h := NewProtocolHelper(WithLogger(logger.NewZerolog(zerolog.New(&buf))))

	item := models.NewItem(5)
	require.NoError(t, h.ParseItemFetchResult([][]byte{[]byte("UID"), []byte("0")}, &item))

	assert.Equal(t, int64(0), item.ID)
	assert.Equal(t, -1, item.Revision)
	assert.Equal(t, models.InvalidID, item.StorageCollectionID)
	assert.Contains(t, buf.String(), "fetch result without revision")
	assert.Contains(t, buf.String(), "fetch result without mime type")
}

func TestParseItemFetchResult_UndecodableAttribute(t *testing.T) {
	var buf bytes.Buffer
	h := NewProtocolHelper(WithLogger(logger.NewZerolog(zerolog.New(&buf))))

	_, tokens, err := SplitFetchResponse([]byte(`* 1 FETCH (UID 5 ATR ENTITYDISPLAY plain FLAGS (\Seen))`))
	require.NoError(t, err)

	var item models.Item
	require.NoError(t, h.ParseItemFetchResult(tokens, &item))

	assert.Equal(t, int64(5), item.ID)
	assert.Equal(t, models.Flags{`\Seen`}, item.Flags)
	display, ok := item.Attribute(models.DisplayAttributeType)
	require.True(t, ok)
	assert.Equal(t, &models.RawAttribute{Kind: models.DisplayAttributeType, Value: []byte("plain")}, display)
	assert.Contains(t, buf.String(), "keeping undecodable attribute raw")
}

func TestParseItemFetchResult_ExternalPayload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "42_r0"), []byte("large body"), 0o600))

	h := NewProtocolHelper(WithPayloadLoader(FilePayloadLoader{Dir: dir}))
	_, tokens, err := SplitFetchResponse([]byte(`* 3 FETCH (UID 42 REV 0 MIMETYPE "text/plain" PLD:RFC822 [FILE] "42_r0" PLD HEAD "h")`))
	require.NoError(t, err)

	var item models.Item
	require.NoError(t, h.ParseItemFetchResult(tokens, &item))

	body := item.Parts["RFC822"]
	assert.True(t, body.External)
	assert.Equal(t, "large body", string(body.Data))
	assert.Equal(t, []string{"HEAD", "RFC822"}, item.PartLabels())

	_, tokens, err = SplitFetchResponse([]byte(`* 3 FETCH (UID 42 PLD:RFC822 [FILE] "missing")`))
	require.NoError(t, err)
	err = h.ParseItemFetchResult(tokens, &item)
	assert.ErrorIs(t, err, constants.ErrMalformedFetchResult)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseItemFetchResult_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		pos  int
	}{
		{name: "missing uid", line: `* 1 FETCH (REV 1 MIMETYPE "text/plain")`, pos: 4},
		{name: "bad uid", line: `* 1 FETCH (UID abc)`, pos: 0},
		{name: "negative uid", line: `* 1 FETCH (UID -5 REV 0)`, pos: 0},
		{name: "bad size", line: `* 1 FETCH (UID 1 SIZE big)`, pos: 2},
		{name: "bad revision", line: `* 1 FETCH (UID 1 REV x)`, pos: 2},
		{name: "bad collection", line: `* 1 FETCH (UID 1 COLLECTIONID -)`, pos: 2},
		{name: "bad date", line: `* 1 FETCH (UID 1 DATETIME "yesterday")`, pos: 2},
		{name: "bad flags", line: `* 1 FETCH (UID 1 FLAGS \Seen)`, pos: 2},
		{name: "file without name", line: `* 1 FETCH (UID 1 PLD:RFC822 [FILE])`, pos: 2},
	}

	h := NewProtocolHelper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tokens, err := SplitFetchResponse([]byte(tt.line))
			require.NoError(t, err)

			item := models.NewItem(99)
			item.RemoteID = "untouched"
			err = h.ParseItemFetchResult(tokens, &item)
			require.Error(t, err)
			assert.ErrorIs(t, err, constants.ErrMalformedFetchResult)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.pos, perr.Pos)

			assert.Equal(t, int64(99), item.ID)
			assert.Equal(t, "untouched", item.RemoteID)
		})
	}
}
