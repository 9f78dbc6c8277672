package design_test

import (
	"fmt"

	"github.com/hkasuga/knet-dsp/dsp/filter/design"
)

func ExampleButterworthHighpass2() {
	c := design.ButterworthHighpass2(0.05, 100)
	fmt.Printf("B0=%.6f B1=%.6f B2=%.6f A0=%.6f A1=%.6f A2=%.6f\n", c.B0, c.B1, c.B2, c.A0, c.A1, c.A2)
	// Output:
	// B0=1.000000 B1=-2.000000 B2=1.000000 A0=1.002224 A1=-1.999995 A2=0.997781
}
