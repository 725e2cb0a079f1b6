package codec

import (
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Path      *string   `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// issue requires its id.
type issue struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (i issue) Validate() error {
	if i.ID == 0 {
		return MissingField("id")
	}
	return nil
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{
			name:  "given struct, then writes json object",
			value: comment{ID: 7, Body: "hi", CreatedAt: time.Date(2011, 4, 14, 16, 0, 49, 0, time.UTC)},
			want:  `{"id":7,"body":"hi","created_at":"2011-04-14T16:00:49Z"}`,
		},
		{
			name:  "given map, then writes json object",
			value: map[string]int{"go": 12},
			want:  `{"go":12}`,
		},
		{
			name:    "given channel, then fails with encode error",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrEncode)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("given valid body, then populates every field", func(t *testing.T) {
		got, err := Decode[comment]([]byte(`{"id":1,"body":"lgtm","path":"main.go","created_at":"2011-04-14T16:00:49Z"}`))

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "lgtm", got.Body)
		require.NotNil(t, got.Path)
		assert.Equal(t, "main.go", *got.Path)
		assert.True(t, got.CreatedAt.Equal(time.Date(2011, 4, 14, 16, 0, 49, 0, time.UTC)))
	})

	t.Run("given json array, then decodes a slice", func(t *testing.T) {
		got, err := Decode[[]comment]([]byte(`[{"id":1},{"id":2}]`))

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[1].ID)
	})

	failures := []struct {
		name string
		body string
	}{
		{name: "given non json text, then fails", body: "not json"},
		{name: "given empty body, then fails", body: ""},
		{name: "given wrong field type, then fails", body: `{"id":"one"}`},
		{name: "given truncated object, then fails", body: `{"id":1`},
		{name: "given top-level null, then fails", body: "null"},
		{name: "given padded null, then fails", body: " null\n"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[comment]([]byte(tt.body))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.False(t, errors.Is(err, ErrEncode))
			assert.Equal(t, comment{}, got)
		})
	}

	t.Run("given malformed body, then keeps parser diagnostic", func(t *testing.T) {
		_, err := Decode[comment]([]byte("not json"))

		var syntaxErr *json.SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)
	})
}

func TestDecode_Validator(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "given required key, then decodes", body: `{"id":4,"title":"bug"}`},
		{name: "given unrelated object, then fails", body: `{"unrelated":true}`, wantErr: true},
		{name: "given empty object, then fails", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[issue]([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDecode)
				assert.ErrorIs(t, err, ErrMissingField)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, issue{ID: 4, Title: "bug"}, got)
		})
	}

	t.Run("given slice with an invalid element, then fails naming it", func(t *testing.T) {
		_, err := Decode[[]issue]([]byte(`[{"id":1},{"title":"no id"}]`))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingField)
		assert.Contains(t, err.Error(), "element 1")
	})

	t.Run("given empty array, then decodes an empty slice", func(t *testing.T) {
		got, err := Decode[[]issue]([]byte(`[]`))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("given slice of pointers with null, then skips it", func(t *testing.T) {
		got, err := Decode[[]*issue]([]byte(`[{"id":1},null]`))

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Nil(t, got[1])
	})
}

func TestRoundTrip(t *testing.T) {
	path := "codec/codec.go"
	in := comment{
		ID:        42,
		Body:      "please rename",
		Path:      &path,
		CreatedAt: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode[comment](data)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Body, out.Body)
	assert.Equal(t, *in.Path, *out.Path)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
}
