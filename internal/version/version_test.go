package version

import "testing"

func TestString(t *testing.T) {
	oldV, oldSHA, oldBuilt := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = oldV, oldSHA, oldBuilt })

	Version, GitSHA, BuildTime = "1.2.0", "abc1234", "2026-01-02T03:04:05Z"
	want := "plot-imu 1.2.0 (commit abc1234, built 2026-01-02T03:04:05Z)"
	if got := String("plot-imu"); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
