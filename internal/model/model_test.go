package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightops/crewsolve/internal/constants"
)

func TestStaffHasCertAndCertCount(t *testing.T) {
	st := Staff{ID: 1, Certificates: []int{3, 7}}

	assert.True(t, st.HasCert(3))
	assert.True(t, st.HasCert(7))
	assert.False(t, st.HasCert(9))
	assert.Equal(t, 2, st.CertCount())
}

func TestServiceExcludesIsNotImplicitlySymmetric(t *testing.T) {
	svc := Service{ID: 1, ExcludeServices: []int{2}}

	assert.True(t, svc.Excludes(2))
	assert.False(t, svc.Excludes(3))
}

func TestBayTravelTimeToSelfIsAlwaysZero(t *testing.T) {
	bay := Bay{ID: "A1", TravelTime: map[string]int{"A1": 99, "A2": 10}}

	assert.Equal(t, 0, bay.TravelTimeTo("A1", 5))
	assert.Equal(t, 10, bay.TravelTimeTo("A2", 5))
	assert.Equal(t, 5, bay.TravelTimeTo("A3", 5), "missing pair falls back to the supplied default")
}

func TestDefaultSettingsMatchesDocumentedConstants(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, constants.DefaultOverlapToleranceBuffer, s.OverlapToleranceBuffer)
	assert.Equal(t, constants.DefaultTravelTime, s.DefaultTravelTime)
	assert.Equal(t, constants.DefaultMaxRetries, s.MaxRetries)
}
