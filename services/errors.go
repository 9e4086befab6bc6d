package services

import "errors"

// Tipos de erro do ledger. Toda operação rejeitada retorna exatamente um
// destes, possivelmente embrulhado com contexto via fmt.Errorf("%w").
// Nenhum erro é silenciado: rejeição sempre volta ao chamador, e o estado
// do ledger permanece intacto (rollback completo, nunca parcial).
var (
	// ErrUnauthorized: operação privilegiada chamada por identidade que não é o criador.
	ErrUnauthorized = errors.New("não autorizado")
	// ErrInvalidArgument: contagem zero/negativa, valor malformado ou autotransferência.
	ErrInvalidArgument = errors.New("argumento inválido")
	// ErrUnknownAsset: id de ativo ausente no registro.
	ErrUnknownAsset = errors.New("ativo não encontrado")
	// ErrInsufficientPool: compra excede as frações disponíveis no pool.
	ErrInsufficientPool = errors.New("frações insuficientes no pool")
	// ErrInsufficientBalance: venda ou transferência excede o saldo do detentor.
	ErrInsufficientBalance = errors.New("saldo de frações insuficiente")
	// ErrPaymentMismatch: pagamento anexado difere do valor exigido (política de valor exato).
	ErrPaymentMismatch = errors.New("pagamento não corresponde ao valor exigido")
	// ErrTransferFailed: o provedor de custódia rejeitou a movimentação de valor.
	ErrTransferFailed = errors.New("movimentação de valor rejeitada")
)
