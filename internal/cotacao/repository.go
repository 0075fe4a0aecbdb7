package cotacao

import (
	"errors"
	"fmt"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"gorm.io/gorm"
)

// ErrPossuiPropostas bloqueia a exclusão enquanto houver propostas ligadas.
var ErrPossuiPropostas = errors.New("cotação possui propostas e não pode ser excluída")

type Repository interface {
	Salvar(db *gorm.DB, c *Cotacao) error
	SalvarComCodigo(db *gorm.DB, c *Cotacao) error
	BuscarPorID(db *gorm.DB, id uint) (*Cotacao, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Cotacao, error)
	ListarElegiveisParaFornecedor(db *gorm.DB, fornecedorID uint) ([]Cotacao, error)
	AtualizarStatus(db *gorm.DB, id uint, status string) error
	AvancarStatus(db *gorm.DB, id uint, de, para string) (bool, error)
	Deletar(db *gorm.DB, id uint) error
	ProximoCodigo(db *gorm.DB, clienteID uint) (string, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cotacao) error {
	return db.Create(c).Error
}

// SalvarComCodigo gera o código sequencial e grava. O índice único em
// (cliente_id, codigo) garante no banco que dois criadores simultâneos não
// recebem o mesmo código; em conflito o próximo da sequência é tentado.
func (r *repositoryImpl) SalvarComCodigo(db *gorm.DB, c *Cotacao) error {
	var total int64
	err := db.Unscoped().Model(&Cotacao{}).Where("cliente_id = ?", c.ClienteID).Count(&total).Error
	if err != nil {
		return err
	}
	for tentativa := int64(0); tentativa < 3; tentativa++ {
		c.Codigo = fmt.Sprintf("COT-%04d", total+1+tentativa)
		err = db.Create(c).Error
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cotacao, error) {
	var c Cotacao
	err := db.
		Preload("Itens").
		Preload("Fornecedores").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Cotacao, error) {
	var list []Cotacao
	err := db.
		Where("cliente_id = ?", clienteID).
		Preload("Itens").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListarElegiveisParaFornecedor devolve as cotações visíveis a um fornecedor:
// quem já respondeu enxerga o histórico, escopos abertos enxergam cotações em
// andamento, e atribuições diretas (coluna ou mapeamento) enxergam sempre.
// Identidade não resolvida falha fechada: conjunto vazio, nunca a lista toda.
func (r *repositoryImpl) ListarElegiveisParaFornecedor(db *gorm.DB, fornecedorID uint) ([]Cotacao, error) {
	if fornecedorID == 0 {
		return []Cotacao{}, nil
	}

	abertos := []string{models.CotacaoEnviada, models.CotacaoRecebendo}

	var list []Cotacao
	err := db.
		Where(db.
			Where("id IN (SELECT cotacao_id FROM propostas WHERE fornecedor_id = ?)", fornecedorID).
			Or("escopo IN ? AND status IN ?", []string{models.EscopoGlobal, models.EscopoTodas}, abertos).
			Or("escopo = ? AND fornecedor_id IS NULL AND status IN ?", models.EscopoLocal, abertos).
			Or("fornecedor_id = ?", fornecedorID).
			Or("id IN (SELECT cotacao_id FROM cotacoes_fornecedores WHERE fornecedor_id = ?)", fornecedorID)).
		Preload("Itens").
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, status string) error {
	return db.Model(&Cotacao{}).Where("id = ?", id).Update("status", status).Error
}

// AvancarStatus só transiciona se a cotação ainda estiver no status de origem.
// Retorna false sem erro quando outra escrita já passou na frente.
func (r *repositoryImpl) AvancarStatus(db *gorm.DB, id uint, de, para string) (bool, error) {
	tx := db.Model(&Cotacao{}).
		Where("id = ? AND status = ?", id, de).
		Update("status", para)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	var total int64
	if err := db.Table("propostas").Where("cotacao_id = ?", id).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return ErrPossuiPropostas
	}
	return db.Delete(&Cotacao{}, id).Error
}

// ProximoCodigo gera o código sequencial legível por cliente ("COT-0007").
// Conta também registros excluídos para nunca repetir código.
func (r *repositoryImpl) ProximoCodigo(db *gorm.DB, clienteID uint) (string, error) {
	var total int64
	err := db.Unscoped().Model(&Cotacao{}).Where("cliente_id = ?", clienteID).Count(&total).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("COT-%04d", total+1), nil
}
