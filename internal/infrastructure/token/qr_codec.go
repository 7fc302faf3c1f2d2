// Package token codifica la carga de una estiba como código QR. El PNG que
// sale de aquí es lo que se imprime en la etiqueta física; lo que entra es el
// texto que devuelve el lector al escanearla.
package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

const defaultSize = 256

// Codec genera y lee tokens QR con la carga JSON de una estiba.
type Codec struct {
	size int
}

var (
	_ ledger.TokenCodec    = (*Codec)(nil)
	_ reports.TokenEncoder = (*Codec)(nil)
)

// NewCodec crea el códec. Un tamaño menor o igual a cero usa el tamaño por
// defecto de 256 píxeles.
func NewCodec(size int) *Codec {
	if size <= 0 {
		size = defaultSize
	}
	return &Codec{size: size}
}

// Encode serializa la carga y la devuelve como PNG con el código QR.
func (c *Codec) Encode(payload entity.TokenPayload) ([]byte, error) {
	if payload.UnitID == "" {
		return nil, fmt.Errorf("%w: la carga no tiene identificador", domain.ErrInvalidInput)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar carga: %w", err)
	}

	code, err := qr.Encode(string(data), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("generar QR: %w", err)
	}
	scaled, err := barcode.Scale(code, c.size, c.size)
	if err != nil {
		return nil, fmt.Errorf("escalar QR: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode interpreta el texto leído de un QR y devuelve la carga. Cualquier
// contenido que no sea una carga válida se reporta como domain.ErrTokenDecode.
func (c *Codec) Decode(raw []byte) (*entity.TokenPayload, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: token vacío", domain.ErrTokenDecode)
	}

	var payload entity.TokenPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenDecode, err)
	}
	if payload.UnitID == "" {
		return nil, fmt.Errorf("%w: la carga no tiene identificador", domain.ErrTokenDecode)
	}
	if payload.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrTokenDecode)
	}
	return &payload, nil
}
