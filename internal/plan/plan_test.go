package plan

import (
	"testing"

	"github.com/flightops/crewsolve/internal/model"
)

func TestAddGetRoundTrip(t *testing.T) {
	p := New()
	p.Add("FL1", 1, 2, true)
	v, ok := p.Get("FL1", 1, 2)
	if !ok || !v {
		t.Fatalf("Get = %v,%v want true,true", v, ok)
	}
	if _, ok := p.Get("FL1", 1, 999); ok {
		t.Error("expected no entry for unrecorded staff")
	}
}

func TestRemoveOperations(t *testing.T) {
	p := New()
	p.Add("FL1", 1, 2, true)
	p.Add("FL1", 2, 2, true)
	p.Add("FL2", 1, 3, true)

	p.RemoveStaff(2)
	if _, ok := p.Get("FL1", 1, 2); ok {
		t.Error("expected staff 2 removed from FL1/1")
	}
	if _, ok := p.Get("FL2", 1, 3); !ok {
		t.Error("expected FL2/1/3 untouched by RemoveStaff(2)")
	}

	p.RemoveService(1)
	if _, ok := p.Get("FL2", 1, 3); ok {
		t.Error("expected service 1 removed everywhere")
	}

	p.RemoveFlight("FL1")
	if len(p.Services("FL1")) != 0 {
		t.Error("expected FL1 fully removed")
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	p := New()
	p.Add("FL1", 1, 2, true)
	p.Add("FL1", 1, 3, false)
	p.Add("FL2", 5, 7, true)

	data, err := p.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}

	v, ok := restored.Get("FL1", 1, 2)
	if !ok || !v {
		t.Errorf("restored FL1/1/2 = %v,%v want true,true", v, ok)
	}
	v, ok = restored.Get("FL1", 1, 3)
	if !ok || v {
		t.Errorf("restored FL1/1/3 = %v,%v want false,true", v, ok)
	}
	v, ok = restored.Get("FL2", 5, 7)
	if !ok || !v {
		t.Errorf("restored FL2/5/7 = %v,%v want true,true", v, ok)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := New()
	p.Add("FL1", 1, 2, true)
	clone := p.Clone()
	clone.Add("FL1", 1, 2, false)

	v, _ := p.Get("FL1", 1, 2)
	if !v {
		t.Error("expected original plan unaffected by mutating its clone")
	}
	cv, _ := clone.Get("FL1", 1, 2)
	if cv {
		t.Error("expected clone to reflect its own mutation")
	}
}

func TestToScheduleKeepsUnfilledServices(t *testing.T) {
	cat := model.Catalogs{
		Flights: map[string]model.Flight{
			"FL1": {Number: "FL1", Services: []model.FlightService{
				{ID: 1, Count: 2},
				{ID: 2, Count: 1},
			}},
		},
	}
	p := New()
	p.Add("FL1", 1, 10, true)

	sched := p.ToSchedule(cat)
	fsched, ok := sched.Get("FL1")
	if !ok {
		t.Fatal("expected FL1 in schedule")
	}
	if len(fsched.Services) != 2 {
		t.Fatalf("expected both services present, got %d", len(fsched.Services))
	}
	for _, sa := range fsched.Services {
		if sa.ServiceID == 1 && (len(sa.Staff) != 1 || sa.Staff[0] != 10) {
			t.Errorf("service 1 staff = %v, want [10]", sa.Staff)
		}
		if sa.ServiceID == 2 && len(sa.Staff) != 0 {
			t.Errorf("service 2 staff = %v, want empty (unfilled)", sa.Staff)
		}
	}
}
