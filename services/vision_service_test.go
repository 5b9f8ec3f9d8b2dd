package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vonvha/Nutri-Smart/models"
)

type fakeAnalyzer struct {
	res   FoodAnalysis
	err   error
	calls int
	mime  string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ []byte, mimeType string) (FoodAnalysis, error) {
	f.calls++
	f.mime = mimeType
	return f.res, f.err
}

type fakeStore struct {
	prefixes []string
	err      error
}

func (f *fakeStore) Put(_ context.Context, prefix string, _ []byte, _ string) (string, error) {
	f.prefixes = append(f.prefixes, prefix)
	return "key", f.err
}

func newVision(t *testing.T, a FoodAnalyzer, store ImageStore, n Notifier) (*VisionService, *CatalogService) {
	t.Helper()
	catalog := NewCatalogService(newTestDB(t))
	return NewVisionService(a, catalog, store, n, zerolog.Nop()), catalog
}

var png = []byte("\x89PNG\r\n\x1a\nfake")

func TestAnalyzeFood_RejectsNonImages(t *testing.T) {
	a := &fakeAnalyzer{}
	svc, _ := newVision(t, a, nil, nil)

	for _, ct := range []string{"text/plain", "application/octet-stream", "", "garbage;;"} {
		_, err := svc.AnalyzeFood(context.Background(), carla, ct, png)
		assert.ErrorIs(t, err, ErrUnsupportedMedia, ct)
	}
	assert.Zero(t, a.calls)

	_, err := svc.AnalyzeFood(context.Background(), carla, "image/png", nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
	assert.Zero(t, a.calls)
}

func TestAnalyzeFood_AnalyzerFailuresBecomeNonFood(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"transport", errors.New("connection reset"), MsgAnalysisFailed},
		{"malformed", ErrMalformedAnalysis, MsgMalformedAnalysis},
		{"disabled", ErrVisionDisabled, MsgAnalysisFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newVision(t, &fakeAnalyzer{err: tt.err}, nil, nil)
			res, err := svc.AnalyzeFood(context.Background(), carla, "image/jpeg", png)
			require.NoError(t, err)
			assert.False(t, res.IsFood)
			assert.Equal(t, tt.msg, res.Message)
		})
	}
}

func TestAnalyzeFood_NonFood(t *testing.T) {
	svc, _ := newVision(t, &fakeAnalyzer{res: FoodAnalysis{Message: "Es un gato."}}, nil, nil)
	res, err := svc.AnalyzeFood(context.Background(), carla, "image/jpeg", png)
	require.NoError(t, err)
	assert.False(t, res.IsFood)
	assert.Equal(t, "Es un gato.", res.Message)

	svc, _ = newVision(t, &fakeAnalyzer{res: FoodAnalysis{}}, nil, nil)
	res, err = svc.AnalyzeFood(context.Background(), carla, "image/jpeg", png)
	require.NoError(t, err)
	assert.Equal(t, MsgNotFood, res.Message)
}

func TestAnalyzeFood_RegistersNewFoodOnce(t *testing.T) {
	ctx := context.Background()
	notes := &recordingNotifier{}
	store := &fakeStore{}
	a := &fakeAnalyzer{res: FoodAnalysis{IsFood: true, Name: "Lomo Saltado", Calories: intPtr(650), Protein: intPtr(35), Fat: intPtr(28)}}
	svc, catalog := newVision(t, a, store, notes)

	res, err := svc.AnalyzeFood(ctx, carla, "image/jpeg; charset=binary", png)
	require.NoError(t, err)
	assert.True(t, res.IsFood)
	assert.Equal(t, "Lomo Saltado", res.Name)
	assert.Equal(t, 650, *res.Calories)
	assert.Equal(t, "image/jpeg", a.mime)
	assert.Equal(t, []string{"vision/" + carla}, store.prefixes)

	a.res.Name = "lomo saltado"
	_, err = svc.AnalyzeFood(ctx, carla, "image/jpeg", png)
	require.NoError(t, err)

	items, err := catalog.Search(ctx, "lomo")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1 porción • 650 Kcal", items[0].Detail)

	calls := notes.all()
	require.Len(t, calls, 1)
	assert.Equal(t, NotificationInfo, calls[0].Type)
	assert.Equal(t, carla, calls[0].Email)

	food, err := catalog.FindByName(ctx, "LOMO SALTADO")
	require.NoError(t, err)
	require.NotNil(t, food)
	require.NotNil(t, food.Protein)
	assert.Equal(t, 35.0, *food.Protein)
}

func TestAnalyzeFood_DefaultNameAndArchiveFailure(t *testing.T) {
	ctx := context.Background()
	a := &fakeAnalyzer{res: FoodAnalysis{IsFood: true, Name: "  "}}
	svc, catalog := newVision(t, a, &fakeStore{err: errors.New("bucket gone")}, nil)

	res, err := svc.AnalyzeFood(ctx, carla, "image/png", png)
	require.NoError(t, err)
	assert.Equal(t, DefaultFoodName, res.Name)

	var n int64
	require.NoError(t, catalog.db.Model(&models.FoodItem{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
