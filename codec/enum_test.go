package codec

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state uint8

const (
	stateOpen state = iota + 1
	stateClosed
)

var states = NewEnum("state", map[state]string{
	stateOpen:   "open",
	stateClosed: "closed",
})

func (s state) String() string               { return states.String(s) }
func (s state) MarshalText() ([]byte, error) { return states.MarshalText(s) }
func (s *state) UnmarshalText(b []byte) error { return states.UnmarshalText(s, b) }

func TestEnum_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    state
		wantErr string
	}{
		{name: "given known string, then returns value", input: "open", want: stateOpen},
		{name: "given second known string, then returns value", input: "closed", want: stateClosed},
		{
			name:    "given unknown string, then lists available values",
			input:   "merged",
			wantErr: `no matching state for "merged"; available values are: closed, open`,
		},
		{
			name:    "given different case, then fails",
			input:   "OPEN",
			wantErr: `no matching state for "OPEN"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := states.Parse(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnum_JSON(t *testing.T) {
	type payload struct {
		State  state  `json:"state"`
		Filter *state `json:"filter,omitempty"`
	}

	t.Run("given every value, then survives a round trip", func(t *testing.T) {
		for _, s := range []state{stateOpen, stateClosed} {
			data, err := Encode(payload{State: s, Filter: &s})
			require.NoError(t, err)

			got, err := Decode[payload](data)
			require.NoError(t, err)
			assert.Equal(t, s, got.State)
			require.NotNil(t, got.Filter)
			assert.Equal(t, s, *got.Filter)
		}
	})

	t.Run("given nil optional value, then field is omitted", func(t *testing.T) {
		data, err := Encode(struct {
			Filter *state `json:"filter,omitempty"`
		}{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("given unknown wire string, then decode fails", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"state":"draft"}`), &p)
		assert.Error(t, err)
	})

	t.Run("given value outside table, then marshal fails", func(t *testing.T) {
		_, err := state(9).MarshalText()
		assert.ErrorIs(t, err, ErrEncode)
	})
}

func TestNewEnum_DuplicateWireString(t *testing.T) {
	assert.Panics(t, func() {
		NewEnum("dup", map[int]string{1: "x", 2: "x"})
	})
}
