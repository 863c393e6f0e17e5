// Package povtest provides test doubles for code that checks for updates.
//
// FakeLoader stands in for a remote update configuration and
// FakeVersionProvider stands in for the running application's version, so
// update checks can be tested without network access or a real build:
//
//	pov, _ := princeofversions.New(
//		options.WithVersionProvider(povtest.NewFakeVersionProvider("1.0.0")),
//	)
//	result, err := pov.CheckForUpdates(ctx, povtest.NewFakeLoaderWithPayload(cfg))
package povtest
