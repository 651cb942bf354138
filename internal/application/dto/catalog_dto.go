package dto

import "time"

// CreatePartRequest body para POST /api/v1/parts.
type CreatePartRequest struct {
	MPN          string `json:"mpn" example:"SN74LVC1G08DBVR"`
	Name         string `json:"name,omitempty"`
	Category     string `json:"category,omitempty"`
	Package      string `json:"package,omitempty" example:"SOT-23-5"`
	Params       string `json:"params,omitempty"`
	Unit         string `json:"unit,omitempty" example:"pcs"`
	ProductURL   string `json:"product_url,omitempty"`
	DatasheetURL string `json:"datasheet_url,omitempty"`
	Note         string `json:"note,omitempty"`
}

// UpdatePartRequest body para PUT /api/v1/parts/:mpn. Sólo campos
// descriptivos: la identidad (MPN) es inmutable.
type UpdatePartRequest struct {
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	Package      *string `json:"package,omitempty"`
	Params       *string `json:"params,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	ProductURL   *string `json:"product_url,omitempty"`
	DatasheetURL *string `json:"datasheet_url,omitempty"`
	Note         *string `json:"note,omitempty"`
}

// PartResponse un componente del catálogo.
type PartResponse struct {
	ID           string    `json:"id"`
	MPN          string    `json:"mpn"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Package      string    `json:"package,omitempty"`
	Params       string    `json:"params,omitempty"`
	Unit         string    `json:"unit"`
	ProductURL   string    `json:"product_url,omitempty"`
	DatasheetURL string    `json:"datasheet_url,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PartListResponse listado paginado de componentes.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateLocationRequest body para POST /api/v1/locations.
type CreateLocationRequest struct {
	Code string `json:"code" example:"C409-G01-S01-P01"`
	Note string `json:"note,omitempty"`
}

// LocationResponse una ubicación física.
type LocationResponse struct {
	Code      string    `json:"code"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CabinetSpec un gabinete de la cuadrícula: código y cantidad de estantes.
type CabinetSpec struct {
	Code    string `json:"code" example:"G01"`
	Shelves int    `json:"shelves" example:"3"`
	Note    string `json:"note,omitempty"`
}

// InitGridRequest body para POST /api/v1/locations/grid. Genera códigos
// {room}-{cabinet}-S{shelf:02d}-P{position:02d} para todos los huecos.
type InitGridRequest struct {
	Room              string        `json:"room" example:"C409"`
	Cabinets          []CabinetSpec `json:"cabinets"`
	PositionsPerShelf int           `json:"positions_per_shelf" example:"10"`
}

// InitGridResponse cuántas ubicaciones se crearon (las existentes se saltan).
type InitGridResponse struct {
	Created int `json:"created"`
	Total   int `json:"total"`
}

// CreateProjectRequest body para POST /api/v1/projects.
type CreateProjectRequest struct {
	Code  string `json:"code" example:"PJ-001"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
	Note  string `json:"note,omitempty"`
}

// UpdateProjectRequest body para PUT /api/v1/projects/:code.
type UpdateProjectRequest struct {
	Name   *string `json:"name,omitempty"`
	Owner  *string `json:"owner,omitempty"`
	Status *string `json:"status,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// ProjectResponse un proyecto.
type ProjectResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner,omitempty"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectListResponse listado paginado de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// BOMLineRequest una línea del BOM para PUT /api/v1/projects/:code/bom.
type BOMLineRequest struct {
	MPN      string `json:"mpn"`
	ReqQty   int64  `json:"req_qty" example:"25"`
	Priority int    `json:"priority,omitempty" example:"2"`
	Note     string `json:"note,omitempty"`
}

// BOMLineResponse una línea del BOM con el componente resuelto.
type BOMLineResponse struct {
	MPN      string `json:"mpn"`
	PartName string `json:"part_name"`
	ReqQty   int64  `json:"req_qty"`
	Priority int    `json:"priority"`
	Note     string `json:"note,omitempty"`
}
