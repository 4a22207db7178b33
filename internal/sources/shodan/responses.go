// internal/sources/shodan/responses.go
package shodan

// searchResponse es la respuesta de /shodan/host/search.
// Total es el número estimado de coincidencias en todo el índice, no en la página.
type searchResponse struct {
	Matches []match `json:"matches"`
	Total   int     `json:"total"`
}

// match es un banner individual (una IP y un puerto).
type match struct {
	IPStr     string   `json:"ip_str"`
	Port      int      `json:"port"`
	Transport string   `json:"transport"`
	Product   string   `json:"product"`
	Version   string   `json:"version"`
	Data      string   `json:"data"`
	Hostnames []string `json:"hostnames"`
	Domains   []string `json:"domains"`
}

// hostResponse es la respuesta de /shodan/host/{ip}.
type hostResponse struct {
	IPStr     string          `json:"ip_str"`
	Ports     []int           `json:"ports"`
	Hostnames []string        `json:"hostnames"`
	Domains   []string        `json:"domains"`
	Data      []serviceDetail `json:"data"`
}

// serviceDetail es cada servicio dentro de hostResponse.Data.
type serviceDetail struct {
	Port      int    `json:"port"`
	Transport string `json:"transport"`
	Product   string `json:"product"`
	Version   string `json:"version"`
	Data      string `json:"data"`
}
