package inscricao

const Colecao = "inscricao"

// Etapa é um item do cronograma do processo seletivo.
type Etapa struct {
	Titulo  string `json:"titulo"`
	Periodo string `json:"periodo"`
}

// Config é a configuração única da página de inscrição.
type Config struct {
	Aberta     bool     `json:"aberta"`
	EditalURL  string   `json:"edital_url"`
	Status     string   `json:"status"`
	Regras     []string `json:"regras"`
	Cronograma []Etapa  `json:"cronograma"`
}

// Padrao devolve a configuração usada enquanto nada foi gravado.
func Padrao() Config {
	return Config{
		Aberta:     false,
		Status:     "Processo seletivo ainda não iniciado",
		Regras:     []string{},
		Cronograma: []Etapa{},
	}
}
