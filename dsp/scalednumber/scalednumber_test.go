package scalednumber

import "testing"

func TestFloat64(t *testing.T) {
	cases := []struct {
		n    Number
		want float64
	}{
		{New(36, 0), 36},
		{New(105, -2), 1.05},
		{New(-105, -2), -1.05},
		{New(5, 2), 500},
	}
	for _, c := range cases {
		if got := c.n.Float64(); got != c.want {
			t.Errorf("%+v.Float64() = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{New(36, 0), "36"},
		{New(105, -2), "1.05"},
		{New(-105, -2), "-1.05"},
		{New(5, -3), "0.005"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.n, got, c.want)
		}
	}
}
