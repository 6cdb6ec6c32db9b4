// Package progress defines the passive observer that long-running stereo
// computations report to.
//
// Work is described as a stack of nested phases. A caller entering a
// sub-computation calls Push, reports Report(done, total) while working and
// calls Pop when it leaves. Reporting never influences control flow.
//
//	t := progress.NewTracker()
//	d, _ := dsi.New(model, dsi.WithProgress(t))
//	go func() { for { fmt.Printf("%.0f%%\n", 100*t.Fraction()); time.Sleep(time.Second) } }()
//	_ = d.Run(ctx)
package progress
