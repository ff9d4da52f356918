package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/events"
)

// DummyPublisher records published events in order.
type DummyPublisher struct {
	Events []events.Event
	mu     sync.Mutex
}

var _ events.Publisher = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

// DummyRecorder records analytics read events in order.
type DummyRecorder struct {
	Reads []analytics.ReadEvent
	mu    sync.Mutex
}

var _ analytics.Recorder = (*DummyRecorder)(nil)

func (r *DummyRecorder) Record(event analytics.ReadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads = append(r.Reads, event)
	return nil
}

// UploadedFile is one file stored through FakeSiblingServices.
type UploadedFile struct {
	FileName   string
	UserID     string
	DataroomID string
	ARI        string
}

// FakeSiblingServices plays the offering, listing and data-room services for
// the gateway ports. Canned documents are looked up by id; unknown listings
// and offerings come back nil without error, unknown files fail.
type FakeSiblingServices struct {
	Offerings map[string]map[string]interface{}
	Listings  map[string]map[string]interface{}
	Files     map[string]map[string]interface{}

	Uploads     []UploadedFile
	SyncedIDs   []string
	SyncedBody  []interface{}
	Rooms       []string
	Cabinets    []string
	DeletedRoom []string

	FailUploads bool
	FailRooms   bool

	nextFile int
	mu       sync.Mutex
}

func NewFakeSiblingServices() *FakeSiblingServices {
	return &FakeSiblingServices{
		Offerings: map[string]map[string]interface{}{},
		Listings:  map[string]map[string]interface{}{},
		Files:     map[string]map[string]interface{}{},
	}
}

func (f *FakeSiblingServices) GetOffering(ctx context.Context, auth, offeringID string) (map[string]interface{}, error) {
	return f.Offerings[offeringID], nil
}

func (f *FakeSiblingServices) GetListing(ctx context.Context, auth, listingID string) (map[string]interface{}, error) {
	return f.Listings[listingID], nil
}

func (f *FakeSiblingServices) GetFile(ctx context.Context, auth, fileID string) (map[string]interface{}, error) {
	file, ok := f.Files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return file, nil
}

func (f *FakeSiblingServices) UploadFile(ctx context.Context, auth, fileName string, data io.Reader, userID, description, ari, dataroomID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUploads {
		return "", fmt.Errorf("upload rejected")
	}
	f.nextFile++
	f.Uploads = append(f.Uploads, UploadedFile{
		FileName:   fileName,
		UserID:     userID,
		DataroomID: dataroomID,
		ARI:        ari,
	})
	return fmt.Sprintf("file-%d", f.nextFile), nil
}

func (f *FakeSiblingServices) CreateDataRoom(ctx context.Context, auth, name, description, ari, ownerID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailRooms {
		return "", fmt.Errorf("data room rejected")
	}
	roomID := fmt.Sprintf("room-%d", len(f.Rooms)+1)
	f.Rooms = append(f.Rooms, name)
	return roomID, nil
}

func (f *FakeSiblingServices) CreateCabinet(ctx context.Context, auth, dataroomID, name, description, ari, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cabinets = append(f.Cabinets, dataroomID)
	return nil
}

func (f *FakeSiblingServices) DeleteDataRoom(ctx context.Context, auth, dataroomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedRoom = append(f.DeletedRoom, dataroomID)
	return nil
}

// UpdateListing records a reconciliation push to the public listing API.
func (f *FakeSiblingServices) UpdateListing(ctx context.Context, auth, listingID string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SyncedIDs = append(f.SyncedIDs, listingID)
	f.SyncedBody = append(f.SyncedBody, payload)
	return nil
}
