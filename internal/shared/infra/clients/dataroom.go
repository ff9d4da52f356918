package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/terravest/platform/pkg/utils"
)

// DataRoomClient talks to the data-room service: rooms, cabinets and files.
type DataRoomClient struct {
	baseClient
}

func NewDataRoomClient(base string) *DataRoomClient {
	return &DataRoomClient{newBaseClient(base)}
}

type dataRoomPayload struct {
	OrganizationID string                 `json:"organization_id"`
	ARI            string                 `json:"ari"`
	DataResidency  map[string]string      `json:"data_residency"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	CreatedBy      string                 `json:"created_by"`
	KeyInfo        map[string]interface{} `json:"key_info"`
	Permissions    []interface{}          `json:"permissions"`
	Owner          string                 `json:"owner"`
}

type cabinetPayload struct {
	Dataroom    string                 `json:"dataroom"`
	ARI         string                 `json:"ari"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedBy   string                 `json:"created_by"`
	KeyInfo     map[string]interface{} `json:"key_info"`
	Permissions []interface{}          `json:"permissions"`
	Owner       string                 `json:"owner"`
	Type        string                 `json:"type"`
}

// CreateDataRoom creates a room and returns its id.
func (c *DataRoomClient) CreateDataRoom(ctx context.Context, auth, name, description, ari, ownerID string) (string, error) {
	room := dataRoomPayload{
		OrganizationID: ownerID,
		ARI:            ari,
		DataResidency: map[string]string{
			"country":     "US",
			"region":      "us-east-1",
			"data_center": "Data Center 1",
		},
		Name:        name,
		Description: description,
		CreatedBy:   ownerID,
		KeyInfo:     map[string]interface{}{},
		Permissions: []interface{}{},
		Owner:       ownerID,
	}

	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodPost, "/datarooms", auth, room, &out); err != nil {
		return "", err
	}
	id := utils.StringField(out, "dataRoom", "_id")
	if id == "" {
		return "", fmt.Errorf("dataroom response missing id")
	}
	return id, nil
}

// CreateCabinet creates a regular cabinet inside the given room.
func (c *DataRoomClient) CreateCabinet(ctx context.Context, auth, dataroomID, name, description, ari, ownerID string) error {
	cabinet := cabinetPayload{
		Dataroom:    dataroomID,
		ARI:         ari,
		Name:        name,
		Description: description,
		CreatedBy:   ownerID,
		KeyInfo:     map[string]interface{}{},
		Permissions: []interface{}{},
		Owner:       ownerID,
		Type:        "REGULAR",
	}
	return c.doJSON(ctx, http.MethodPost, "/cabinets", auth, cabinet, nil)
}

func (c *DataRoomClient) DeleteDataRoom(ctx context.Context, auth, dataroomID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/datarooms/"+dataroomID, auth, nil, nil)
}

// GetFile fetches file metadata (content URL and friends) for enrichment.
func (c *DataRoomClient) GetFile(ctx context.Context, auth, fileID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+fileID, auth, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile proxies a media file into the data-room service and returns
// the stored file id.
func (c *DataRoomClient) UploadFile(ctx context.Context, auth, fileName string, data io.Reader, userID, description, ari, dataroomID string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", err
	}

	fields := map[string]string{
		"organization_id": userID,
		"name":            fileName,
		"description":     description,
		"created_by":      userID,
		"type":            "SHARED",
		"status":          "Pending",
		"ari":             ari,
		"dataroom_id":     dataroomID,
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/files", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload file: status %d: %s", resp.StatusCode, data)
	}

	var out map[string]interface{}
	if err := decodeJSON(resp.Body, &out); err != nil {
		return "", err
	}
	id := utils.StringField(out, "_id")
	if id == "" {
		return "", fmt.Errorf("file response missing id")
	}
	return id, nil
}
