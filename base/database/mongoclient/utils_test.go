package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardbay/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableListing struct {
		Status      *string `bson:"status,omitempty"`
		TotalOffers *int    `bson:"totalOffers,omitempty"`
		Seller      string  `bson:"seller"`
		Description string  `bson:"description"`
	}

	patchable := &PatchableListing{}
	patchable.Status = ptr.String("")
	patchable.TotalOffers = ptr.Int(10)
	patchable.Description = "mint condition"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"status":      "",
			"totalOffers": 10,
			// seller is empty, so ignore
			"description": "mint condition",
		},
		updater,
	)
}
