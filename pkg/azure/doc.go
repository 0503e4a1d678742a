package azure

type ListResponse struct {
	ContainerName string   `json:"container_name"`
	Prefix        string   `json:"prefix"`
	URL           string   `json:"url"`
	Blobs         []string `json:"blobs"`
}
