package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/storage"
	"github.com/senyabanana/proposal-service/internal/utils"
)

// AddOrUpdateDocument добавляет документ с первой версией или, если задан documentId,
// новую версию существующего документа. Последняя версия всегда в versions[0].
func (s *ProposalService) AddOrUpdateDocument(ctx context.Context, proposalId string, req models.DocumentRequest, documentId, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "add_document", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(req); err != nil {
			return nil, err
		}

		docIndex := -1
		if documentId != "" {
			for i, d := range p.Documents {
				if d.ID == documentId {
					docIndex = i
					break
				}
			}
			if docIndex < 0 {
				return nil, models.NotFound("document", documentId)
			}
		} else if req.Name == "" {
			return nil, models.InvalidInput("name is required")
		}

		now := s.now()
		var doc models.Document
		if docIndex >= 0 {
			doc = p.Documents[docIndex]
		} else {
			doc = models.Document{ID: s.newID(), Name: req.Name, CreatedAt: now}
		}

		version := models.DocumentVersion{
			VersionNumber: doc.LatestVersionNumber() + 1,
			FileName:      req.FileName,
			FileSize:      int64(len(req.File)),
			FileHash:      storage.Hash(req.File),
			CreatedAt:     now,
			Notes:         req.Notes,
		}
		// Выгрузка идёт до изменения предложения: при ошибке состояние не меняется.
		if s.blobs != nil {
			version.FileKey = storage.DocumentVersionKey(p.ID, doc.ID, version.VersionNumber, req.FileName)
			if err := s.blobs.Put(ctx, version.FileKey, req.File, ""); err != nil {
				return nil, fmt.Errorf("failed to store document content: %w", err)
			}
		} else {
			version.FileContent = append([]byte(nil), req.File...)
		}

		doc.Versions = append([]models.DocumentVersion{version}, doc.Versions...)
		if docIndex >= 0 {
			p.Documents[docIndex] = doc
			return describeDocumentVersion(doc.Name, version.VersionNumber), nil
		}
		p.Documents = append(p.Documents, doc)
		return describeDocumentAdded(doc.Name), nil
	})
}

// GetDocumentContent возвращает содержимое версии документа и её описание.
func (s *ProposalService) GetDocumentContent(ctx context.Context, proposalId, documentId string, versionNumber int) ([]byte, *models.DocumentVersion, error) {
	proposal, err := s.GetProposal(ctx, proposalId)
	if err != nil {
		return nil, nil, err
	}

	for _, d := range proposal.Documents {
		if d.ID != documentId {
			continue
		}
		for _, v := range d.Versions {
			if v.VersionNumber != versionNumber {
				continue
			}
			if v.FileKey == "" {
				return v.FileContent, &v, nil
			}
			if s.blobs == nil {
				return nil, nil, fmt.Errorf("document %s version %d is stored externally but no blob store is configured", documentId, versionNumber)
			}
			data, err := s.blobs.Get(ctx, v.FileKey)
			if errors.Is(err, storage.ErrBlobNotFound) {
				return nil, nil, models.NotFound("document content", v.FileKey)
			}
			if err != nil {
				return nil, nil, err
			}
			return data, &v, nil
		}
		return nil, nil, models.NotFound("document version", fmt.Sprintf("%s/%d", documentId, versionNumber))
	}
	return nil, nil, models.NotFound("document", documentId)
}
