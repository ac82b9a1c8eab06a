package scan

import "context"

// ScanService processes live check-in/check-out requests from kiosks and
// mobile devices.
type ScanService interface {
	// RecordScan resolves the effective shift window, decides whether the new
	// scan is a check-in or a check-out, enforces the 5-minute cooldown and
	// the geo-fence/face-match collaborators, and appends the scan.
	RecordScan(ctx context.Context, req RecordScanRequest) (ScanResponse, error)
}
