package dsi_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvstereo/dsi"
)

// BenchmarkRun_Plane measures a full pyramid over a 128×32 shifted plane.
func BenchmarkRun_Plane(b *testing.B) {
	m := shiftModel(128, 32, 7)
	d, err := dsi.New(m)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = d.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkRun_Parallel measures uncoupled rows spread over four workers.
func BenchmarkRun_Parallel(b *testing.B) {
	m := randomModel(1, 96, 96, 32)
	d, err := dsi.New(m, dsi.WithVertMult(0), dsi.WithWorkers(4))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = d.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}
