package imports

type ModelType string

const (
	ModelTypePrecatorios ModelType = "precatorios"
	ModelTypeClientes    ModelType = "clientes"
)
