package service

import "hash/fnv"

// trollMessages is the fixed catalog shown when the Stop side is ahead.
var trollMessages = []string{
	"O povo falou: melhor parar por aqui! 🛑",
	"O lado Stop está dominando... alguém avisa o dono do projeto? 😅",
	"Ops! Parece que a torcida do contra está ganhando! 🙃",
	"Projeto em apuros: o Stop abriu vantagem! 🚨",
	"A vaquinha virou contra-vaquinha! 🐄",
	"Doaram mais para parar do que para ajudar. Fica a reflexão... 🤔",
	"O Stop tomou a frente! Cadê os apoiadores? 📢",
	"Sinal vermelho: quem quer parar está na liderança! 🚦",
}

// PickTrollMessage picks a catalog message deterministically from the
// project id and the current calendar day (formatted YYYY-MM-DD), so
// every viewer sees the same message all day instead of it flickering
// per request. Not security-sensitive; FNV-1a is enough.
func PickTrollMessage(projectID, day string) string {
	h := fnv.New32a()
	h.Write([]byte(projectID))
	h.Write([]byte("|"))
	h.Write([]byte(day))
	return trollMessages[h.Sum32()%uint32(len(trollMessages))]
}
