package filter

import (
	"errors"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		in   string
		want Config
	}{
		{"", Config{}},
		{"shuffle", Config{{ID: Shuffle}}},
		{"shuffle:4, bytedelta", Config{{ID: Shuffle, Meta: 4}, {ID: ByteDelta}}},
		{"truncprec:-10,BitShuffle", Config{{ID: TruncPrec, Meta: 246}, {ID: BitShuffle}}},
		{"34,filter160:7", Config{{ID: ByteDelta}, {ID: 160, Meta: 7}}},
		{"truncprec:-128", Config{{ID: TruncPrec, Meta: 128}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConfig(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("slot %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"zstd", ErrUnknownFilter},
		{"shuffle:x", ErrInvalidMeta},
		{"shuffle:256", ErrInvalidMeta},
		{"delta:-129", ErrInvalidMeta},
		{"shuffle:-1", ErrInvalidMeta},
		{"bytedelta:-4", ErrInvalidMeta},
		{"ndcell:-2", ErrInvalidMeta},
		{"truncprec:-129", ErrInvalidMeta},
		{"shuffle,shuffle,shuffle,shuffle,shuffle,shuffle,shuffle", ErrTooManyFilters},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := ParseConfig(tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigStringRoundTrip(t *testing.T) {
	cfg := Config{{ID: Shuffle, Meta: 4}, {ID: TruncPrec, Meta: 246}, {ID: ByteDelta}, {ID: 170}}
	text := cfg.String()
	if text != "shuffle:4,truncprec:-10,bytedelta,filter170" {
		t.Fatalf("String() = %q", text)
	}
	back, err := ParseConfig(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := range cfg {
		if back[i] != cfg[i] {
			t.Fatalf("slot %d: got %+v, want %+v", i, back[i], cfg[i])
		}
	}
}

func TestIDString(t *testing.T) {
	if NDMean.String() != "ndmean" || ID(99).String() != "filter99" {
		t.Fatal("unexpected id names")
	}
}
