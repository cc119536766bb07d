package tfd_test

import (
	"fmt"

	"github.com/cwbudde/algo-tfd/dsp/tfd"
)

func ExampleDistribution() {
	d, err := tfd.Distribution([]float64{3}, tfd.Wigner, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(d)

	// Output:
	// [[9]]
}

func ExampleTimeMarginal() {
	x := []float64{1, 2, 3, 4}
	d, err := tfd.Distribution(x, tfd.ChoiWilliams, 0.5)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.3f\n", tfd.TimeMarginal(d))
	fmt.Printf("%.3f\n", tfd.TotalEnergy(d))

	// Output:
	// [1.000 4.000 9.000 16.000]
	// 30.000
}

func ExampleAnalyzer() {
	a := tfd.NewAnalyzer(tfd.WithWorkers(2), tfd.WithMethod(tfd.MethodSeparable))
	defer a.Close()

	info, err := tfd.LookupKernel("zam")
	if err != nil {
		panic(err)
	}

	d, err := a.Distribution([]float64{0, 0, 1, 0, 0, 0}, info.Kernel, info.DefaultAlpha)
	if err != nil {
		panic(err)
	}
	t, f, _ := tfd.Peak(d)
	fmt.Println(info.Name, len(d), t, f)

	// Output:
	// cone-shape 6 2 0
}
