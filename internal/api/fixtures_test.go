package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/testutil"
)

const testDisplay = `<display typeId="org.csstudio.opibuilder.Display" version="1.0.0">
  <width>400</width>
  <height>300</height>
  <widget typeId="org.csstudio.opibuilder.widgets.Rectangle" version="1.0.0">
    <widget_type>Rectangle</widget_type>
    <x>10</x>
    <y>20</y>
    <width>30</width>
    <height>40</height>
    <background_color>
      <color red="255" green="0" blue="0" />
    </background_color>
  </widget>
  <widget typeId="org.csstudio.opibuilder.widgets.ActionButton" version="1.0.0">
    <widget_type>Action Button</widget_type>
  </widget>
</display>
`

type upload struct {
	name string
	data string
}

func multipartRequest(t *testing.T, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.data))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

type convertFixture struct {
	store   *testutil.MockStorage
	manager *batch.Manager
	handler ConvertHandler
}

func newConvertFixture(t *testing.T) *convertFixture {
	t.Helper()
	store := testutil.NewMockStorage(t.TempDir())
	manager := batch.NewManager(batch.ManagerConfig{
		Sink:    batch.StoreSink{Store: store},
		Workers: 2,
	})
	t.Cleanup(manager.Close)
	return &convertFixture{
		store:   store,
		manager: manager,
		handler: NewConvertHandler(store, manager, nil, false),
	}
}

func (f *convertFixture) wait(t *testing.T, id string) models.ConversionJob {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	job, err := f.manager.Wait(ctx, id)
	require.NoError(t, err)
	return job
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected APIError, got %T", err)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, code, apiErr.Code)
}
