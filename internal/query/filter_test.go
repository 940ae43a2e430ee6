package query

import (
	"testing"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestFilter_Merge(t *testing.T) {
	base := Filter{Status: ptr(models.StatusPending), SchoolID: ptr("school-1")}

	tests := []struct {
		name    string
		patch   Patch
		want    Filter
		wantErr bool
	}{
		{
			name:  "no-op",
			patch: Patch{},
			want:  base,
		},
		{
			name:  "replace status",
			patch: Patch{Status: ptr("success")},
			want:  Filter{Status: ptr(models.StatusSuccess), SchoolID: ptr("school-1")},
		},
		{
			name:  "clear school id",
			patch: Patch{SchoolID: ptr("")},
			want:  Filter{Status: ptr(models.StatusPending)},
		},
		{
			name:  "set sort",
			patch: Patch{Sort: ptr("-order_amount")},
			want:  Filter{Status: ptr(models.StatusPending), SchoolID: ptr("school-1"), Sort: ptr(SortHighestAmount)},
		},
		{
			name:    "unknown sort",
			patch:   Patch{Sort: ptr("amount")},
			want:    base,
			wantErr: true,
		},
		{
			name:    "unknown status",
			patch:   Patch{Status: ptr("unknown")},
			want:    base,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.Merge(tt.patch)
			if tt.wantErr {
				var ve *apperr.ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_EffectiveSort(t *testing.T) {
	assert.Equal(t, DefaultSort, Filter{}.EffectiveSort())
	assert.Equal(t, SortOldest, Filter{Sort: ptr(SortOldest)}.EffectiveSort())
}

func TestSortKey(t *testing.T) {
	for _, k := range SortKeys {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, SortKey("-status").Valid())
}

func TestFilter_ListQuery(t *testing.T) {
	f := Filter{Status: ptr(models.StatusFailed)}
	q := f.ListQuery(3, 10)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "-createdAt", q.Sort)
	assert.Equal(t, ptr(models.StatusFailed), q.Status)
	assert.Nil(t, q.SchoolID)
}
