package services

// Vocabulary is the fixed list of portal terms merged into unified suggestions.
var Vocabulary = []string{
	"patinete elétrico",
	"bicicleta elétrica",
	"ciclomotor",
	"autopropelido",
	"CONTRAN 996",
	"resolução 996",
	"monociclo elétrico",
	"skate elétrico",
	"mobilidade urbana",
	"ciclovia",
	"velocidade máxima",
	"equipamento de proteção",
	"capacete",
	"emplacamento",
	"habilitação",
	"fiscalização",
	"micromobilidade",
}
