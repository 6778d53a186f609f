package control

import (
	"sync"
	"testing"
)

func TestCellSnapshotIsACopy(t *testing.T) {
	cell := NewCell(DefaultState())

	snap := cell.Snapshot()
	snap.RotationY = 99

	if got := cell.Snapshot().RotationY; got != 0 {
		t.Errorf("mutating a snapshot should not touch the cell, got rotationY %v", got)
	}
}

func TestCellUpdateVisibleToReaders(t *testing.T) {
	cell := NewCell(DefaultState())

	cell.Update(func(s *State) {
		s.RotationY = 1.5
		s.Scale = 2
	})

	snap := cell.Snapshot()
	if snap.RotationY != 1.5 {
		t.Errorf("expected rotationY 1.5, got %v", snap.RotationY)
	}
	if snap.Scale != 2 {
		t.Errorf("expected scale 2, got %v", snap.Scale)
	}
}

func TestCellUpdateIsAtomic(t *testing.T) {
	// Writers keep rotationX and rotationY equal inside a single Update.
	// Readers must never observe them apart.
	cell := NewCell(DefaultState())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			v := float64(i)
			cell.Update(func(s *State) {
				s.RotationX = v
				s.RotationY = v
			})
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := cell.Snapshot()
				if snap.RotationX != snap.RotationY {
					t.Errorf("torn read: rotationX %v, rotationY %v", snap.RotationX, snap.RotationY)
					return
				}
			}
		}()
	}

	wg.Wait()
}
