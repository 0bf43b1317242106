package akonadi_test

import (
	"fmt"

	akonadi "github.com/kdepim/akonadi.go"
	"github.com/kdepim/akonadi.go/pkg/models"
)

func ExampleEntitySetToWire() {
	var items []models.Item
	for _, id := range []int64{5, 3, 4, 10, 7} {
		items = append(items, models.NewItem(id))
	}

	wire, err := akonadi.EntitySetToWire(items, "FETCH")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", wire)
	// Output: " UID FETCH 3:5,7,10"
}

func ExampleParseCachePolicy() {
	policy, _, err := akonadi.ParseCachePolicy([]byte("(INTERVAL 5)"), 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(akonadi.CachePolicyToWire(policy)))
	// Output: CACHEPOLICY (INHERIT true INTERVAL 5 CACHETIMEOUT -1 SYNCONDEMAND false LOCALPARTS ())
}

func ExampleDecodePartIdentifier() {
	part := akonadi.DecodePartIdentifier([]byte("PLD RFC822[2]"))
	fmt.Println(part.Namespace, part.Label, part.Version)
	fmt.Println(string(akonadi.EncodePartIdentifier(models.PartAttribute, "foo", 0)))
	// Output:
	// payload RFC822 2
	// ATR foo
}

func ExampleProtocolHelper_ParseCollection() {
	h := akonadi.NewProtocolHelper()

	col, _, err := h.ParseCollection([]byte(`12 4 (NAME "Inbox" REMOTEID "inbox" AccessRights wcd)`), 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(col.ID, col.Parent.ID, col.Name, col.Rights)
	// Output: 12 4 Inbox wcd
}
