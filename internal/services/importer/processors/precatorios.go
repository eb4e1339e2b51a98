package processors

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thsteixeira/precatorios/internal/brformat"
	mg "github.com/thsteixeira/precatorios/internal/config/connections/mongo"
	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

// PrecatoriosProcessor imports the annual court spreadsheets: one row per
// claimant, carrying the precatório, the cliente and their association.
// Alvarás are never created from spreadsheets.
type PrecatoriosProcessor struct {
	PG *postgres.Postgres
	MG *mg.Mongo

	PrecatoriosRepo *database.PrecatoriosRepo
	ClientesRepo    *database.ClientesRepo

	// DefaultOrcamento fills rows with no budget-year column. The archival
	// sheets are from 2014.
	DefaultOrcamento int
}

func (p PrecatoriosProcessor) Type() string { return "precatorios" }

func (p *PrecatoriosProcessor) ProcessBatch(ctx context.Context, batch []map[string]string) error {
	if p.PG == nil || p.PG.Pool == nil {
		return errors.New("postgres not available")
	}
	if p.PrecatoriosRepo == nil || p.ClientesRepo == nil {
		return errors.New("repositories not configured")
	}

	log.Printf("[PROC][precatorios][START] rows=%d", len(batch))

	recordID := importRecordID(ctx)
	success, failed := 0, 0

	for i, m := range batch {
		cnj := brformat.NormalizeCNJ(field(m, "cnj", "processo", "numero_processo"))
		if err := brformat.ValidateCNJ(cnj); err != nil {
			failed++
			logMongoFail(ctx, p.MG, recordID, p.Type(), uuid.NewString(), m, "invalid cnj: "+err.Error())
			continue
		}

		prec := models.Precatorio{
			CNJ:       cnj,
			Orcamento: p.orcamento(field(m, "orcamento", "ano")),
			Origem:    field(m, "cnj_origem", "origem"),
		}
		if prec.Origem == "" {
			prec.Origem = "Importado da planilha"
		}
		if v, err := brformat.ParseNumber(field(m, "valor_face", "valor_de_face", "valor")); err == nil {
			prec.ValorDeFace = v
			prec.UltimaAtualizacao = &v
		}

		if err := p.PrecatoriosRepo.Upsert(ctx, &prec); err != nil {
			failed++
			log.Printf("[PROC][precatorios][ERR] row=%d cnj=%s err=%v", i, cnj, err)
			logMongoFail(ctx, p.MG, recordID, p.Type(), cnj, m, err.Error())
			continue
		}

		cpf := brformat.NormalizeDocument(field(m, "cpf", "cpf_cnpj", "documento"))
		nome := field(m, "nome", "cliente", "credor")
		if cpf == "" || nome == "" {
			// precatório row without claimant data still counts
			success++
			continue
		}
		if err := brformat.ValidateDocument(cpf); err != nil {
			failed++
			logMongoFail(ctx, p.MG, recordID, "clientes", cpf, m, "invalid document: "+err.Error())
			continue
		}

		cli := models.Cliente{
			CPF:        cpf,
			Nome:       nome,
			Nascimento: time.Date(1980, 1, 1, 0, 0, 0, 0, time.Local),
		}
		if t := parseDateStrict(field(m, "nascimento", "data_nascimento")); t != nil {
			cli.Nascimento = *t
		}

		if err := p.ClientesRepo.Upsert(ctx, &cli); err != nil {
			failed++
			log.Printf("[PROC][clientes][ERR] row=%d cpf=%s err=%v", i, cpf, err)
			logMongoFail(ctx, p.MG, recordID, "clientes", cpf, m, err.Error())
			continue
		}

		if _, err := p.PrecatoriosRepo.LinkCliente(ctx, cnj, cpf); err != nil {
			failed++
			log.Printf("[PROC][precatorios][ERR] link cnj=%s cpf=%s err=%v", cnj, cpf, err)
			logMongoFail(ctx, p.MG, recordID, p.Type(), cnj, m, "link: "+err.Error())
			continue
		}
		success++
	}

	log.Printf("[PROC][precatorios][DONE] rows=%d success=%d failed=%d", len(batch), success, failed)
	return nil
}

func (p *PrecatoriosProcessor) orcamento(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1988 && n <= 2050 {
		return n
	}
	if p.DefaultOrcamento != 0 {
		return p.DefaultOrcamento
	}
	return 2014
}
