package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/service/shiftwindow"
)

// scanCooldown is the minimum gap between two scans for the same employee.
// It doubles as a cheap serialization barrier for concurrent requests.
const scanCooldown = 5 * time.Minute

type ScanServiceImpl struct {
	scanRepo     scan.ScanRepository
	employeeRepo employee.EmployeeRepository
	orgRepo      organization.OrganizationRepository
	windowSvc    *shiftwindow.Service
	geoResolver  scan.GeoFenceResolver
	faceMatcher  scan.FaceMatcher
}

func NewScanService(
	scanRepo scan.ScanRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
	windowSvc *shiftwindow.Service,
	geoResolver scan.GeoFenceResolver,
	faceMatcher scan.FaceMatcher,
) scan.ScanService {
	return &ScanServiceImpl{
		scanRepo:     scanRepo,
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
		windowSvc:    windowSvc,
		geoResolver:  geoResolver,
		faceMatcher:  faceMatcher,
	}
}

// RecordScan implements scan.ScanService.
func (s *ScanServiceImpl) RecordScan(ctx context.Context, req scan.RecordScanRequest) (scan.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return scan.ScanResponse{}, err
	}
	nowUTC := time.Now().UTC()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.OrganizationID)
	if err != nil {
		return scan.ScanResponse{}, err
	}
	if !emp.IsActive() {
		return scan.ScanResponse{}, scan.ErrEmployeeInactive
	}

	org, err := s.orgRepo.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return scan.ScanResponse{}, err
	}
	loc, err := time.LoadLocation(org.Timezone)
	if err != nil {
		loc = time.UTC
	}
	nowLocal := nowUTC.In(loc)

	settings, err := s.orgRepo.GetShiftSettings(ctx, req.OrganizationID)
	if err != nil {
		return scan.ScanResponse{}, fmt.Errorf("failed to load shift settings: %w", err)
	}

	lastPending, hasPending, err := s.scanRepo.GetLastPending(ctx, emp.ID)
	if err != nil {
		return scan.ScanResponse{}, fmt.Errorf("failed to load last pending scan: %w", err)
	}
	if hasPending && nowUTC.Sub(lastPending.DateTime) < scanCooldown {
		return scan.ScanResponse{}, scan.ErrScanCooldown
	}

	snap, err := s.windowSvc.Snapshot(ctx, emp.ID, req.OrganizationID, nowLocal)
	if err != nil {
		return scan.ScanResponse{}, err
	}
	win, found := shiftwindow.Resolve(snap, nowLocal)
	if !found {
		return scan.ScanResponse{}, scan.ErrNoShiftWindow
	}

	var locationID *string
	if settings.GeoFencingEnabled {
		candidates, err := s.orgRepo.ListScanLocations(ctx, req.OrganizationID)
		if err != nil {
			return scan.ScanResponse{}, fmt.Errorf("failed to load scan locations: %w", err)
		}
		if len(candidates) == 0 {
			return scan.ScanResponse{}, scan.ErrLocationNotFound
		}
		matched, err := s.geoResolver.ResolveGeoFence(ctx, req.Latitude, req.Longitude, candidates)
		if err != nil {
			return scan.ScanResponse{}, err
		}
		locationID = &matched.ID
	}

	if settings.FaceRecEnabled && s.faceMatcher != nil && len(req.Image) > 0 {
		encodings, err := s.orgRepo.ListFaceEncodings(ctx, req.OrganizationID)
		if err != nil {
			return scan.ScanResponse{}, fmt.Errorf("failed to load face encodings: %w", err)
		}
		memberID, err := s.faceMatcher.MatchFace(ctx, req.Image, encodings)
		if err != nil {
			return scan.ScanResponse{}, err
		}
		if memberID != emp.ID {
			return scan.ScanResponse{}, scan.ErrFaceMismatch
		}
	}

	var lastPtr *scan.Scan
	if hasPending {
		lastPtr = &lastPending
	}
	scanType := shiftwindow.NextScanType(lastPtr, snap, nowLocal)

	if scanType == scan.TypeCheckIn && nowLocal.After(win.End) {
		return scan.ScanResponse{}, scan.ErrShiftTimeExceeded
	}

	created, err := s.scanRepo.Create(ctx, scan.Scan{
		EmployeeID:     emp.ID,
		OrganizationID: req.OrganizationID,
		DateTime:       nowUTC,
		ScanType:       scanType,
		Status:         scan.StatusPending,
		Latitude:       &req.Latitude,
		Longitude:      &req.Longitude,
		LocationID:     locationID,
	})
	if err != nil {
		return scan.ScanResponse{}, fmt.Errorf("failed to create scan: %w", err)
	}

	return scan.ScanResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		DateTime:   created.DateTime.Format("2006-01-02 15:04:05"),
		ScanType:   string(created.ScanType),
		Status:     string(created.Status),
		ShiftID:    win.Shift.ID,
	}, nil
}
