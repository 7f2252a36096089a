package webhook

import (
	"fmt"

	"github.com/pharmatrace/batchtrace/internal/adapter"
)

// clientsFile is the on-disk layout of the webhook clients config.
type clientsFile struct {
	Clients []Client `json:"clients"`
}

// LoadClients reads a JSON clients file and registers each entry on the
// dispatcher. An empty path is a no-op so the dispatcher can start with
// clients registered only through the API.
func LoadClients(fs adapter.FileSystem, codec adapter.JSON, path string, d *Dispatcher) (int, error) {
	if path == "" {
		return 0, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read webhook clients file: %w", err)
	}

	var file clientsFile
	if err := codec.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse webhook clients file: %w", err)
	}

	for i, client := range file.Clients {
		if _, err := d.RegisterClient(client); err != nil {
			return i, fmt.Errorf("failed to register webhook client %q: %w", client.URL, err)
		}
	}
	return len(file.Clients), nil
}
