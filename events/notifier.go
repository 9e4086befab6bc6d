package events

import (
	"log"

	"github.com/ferreirogomes/cotinha/models"

	"github.com/asaskevich/EventBus"
)

// Notifier publica os eventos do ledger em um barramento pub/sub. A entrega
// é assíncrona e melhor esforço: publicar nunca bloqueia o ledger.
type Notifier struct {
	bus EventBus.Bus
}

// NewNotifier cria um notifier com um barramento próprio.
func NewNotifier() *Notifier {
	return &Notifier{bus: EventBus.New()}
}

// Publish envia o payload para os assinantes do tópico.
func (n *Notifier) Publish(topic string, payload interface{}) {
	n.bus.Publish(topic, payload)
}

// Subscribe registra um assinante assíncrono no tópico. fn deve ser uma
// função cuja assinatura aceite o payload publicado.
func (n *Notifier) Subscribe(topic string, fn interface{}) error {
	return n.bus.SubscribeAsync(topic, fn, false)
}

// AttachLogger assina todos os tópicos do ledger e os registra no log.
// Serve como sink de observabilidade default.
func (n *Notifier) AttachLogger() {
	must := func(err error) {
		if err != nil {
			log.Printf("Falha ao assinar tópico de eventos: %v", err)
		}
	}
	must(n.Subscribe(models.TopicAssetCreated, func(e models.AssetCreatedEvent) {
		log.Printf("Ativo criado: id=%d name=%q location=%q value=%d fractions=%d",
			e.AssetID, e.Name, e.Location, e.Value, e.TotalFractions)
	}))
	must(n.Subscribe(models.TopicFractionPurchased, func(e models.FractionEvent) {
		log.Printf("Compra: asset=%d buyer=%s count=%d amount=%d", e.AssetID, e.Counterparty, e.Count, e.Amount)
	}))
	must(n.Subscribe(models.TopicFractionSold, func(e models.FractionEvent) {
		log.Printf("Venda: asset=%d seller=%s count=%d amount=%d", e.AssetID, e.Counterparty, e.Count, e.Amount)
	}))
	must(n.Subscribe(models.TopicFractionTransferred, func(e models.FractionEvent) {
		log.Printf("Transferência: asset=%d from=%s to=%s count=%d amount=%d", e.AssetID, e.From, e.Counterparty, e.Count, e.Amount)
	}))
}

// WaitAsync bloqueia até os assinantes assíncronos drenarem a fila. Útil em
// testes e no desligamento do processo.
func (n *Notifier) WaitAsync() {
	n.bus.WaitAsync()
}
