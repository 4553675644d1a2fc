package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"menuva/models"
)

// Every status must map to a label and a category; no surface may ever see a
// blank.
func TestPresentationTotality(t *testing.T) {
	for _, status := range AllStatuses {
		assert.NotEmpty(t, Label(status), "label for %s", status)
		assert.NotEmpty(t, Category(status), "category for %s", status)
	}
}

func TestPresentationUnknownStatusFallsBack(t *testing.T) {
	unknown := models.OrderStatus("SOMETHING_NEW")
	assert.Equal(t, "SOMETHING_NEW", Label(unknown))
	assert.Equal(t, "pending", Category(unknown))
}

func TestETAText(t *testing.T) {
	assert.Equal(t, "about 35 min", ETAText(models.StatusReceived, 35))
	assert.Equal(t, "about 35 min", ETAText(models.StatusPreparing, 35))
	assert.Equal(t, "being estimated", ETAText(models.StatusReceived, 0))
	assert.Equal(t, "ready now", ETAText(models.StatusReady, 35))
	assert.Equal(t, "on the way", ETAText(models.StatusDelivering, 35))
	assert.Equal(t, "", ETAText(models.StatusDelivered, 35))
	assert.Equal(t, "", ETAText(models.StatusCancelled, 35))
}

func TestEstimateMinutes(t *testing.T) {
	assert.Equal(t, 35, EstimateMinutes(1))
	assert.Equal(t, 45, EstimateMinutes(3))
}
