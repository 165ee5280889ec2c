package rest

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/feral-file/genesis-ledger/internal/api/rest/dto"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/genesis"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetToken retrieves a token's owner, URI, level, and loan state
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// GetSupply reports total and maximum supply
	// GET /api/v1/supply
	GetSupply(c *gin.Context)

	// GetSale reports the sale state machine
	// GET /api/v1/sale
	GetSale(c *gin.Context)

	// GetBalance reports an address's live holdings
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// GetRoyalty reports the royalty split for a sale price
	// GET /api/v1/royalty?sale_price=<wei>
	GetRoyalty(c *gin.Context)

	// Mint mints tokens under the active sale stage
	// POST /api/v1/mint
	Mint(c *gin.Context)

	// Transfer moves a token (safe variant acknowledges registered receivers)
	// POST /api/v1/transfers
	Transfer(c *gin.Context)

	// LeveledTransfer moves a leveling token and banks its level
	// POST /api/v1/transfers/leveled
	LeveledTransfer(c *gin.Context)

	// Approve grants a single-token approval
	// POST /api/v1/approvals
	Approve(c *gin.Context)

	// SetApprovalForAll grants or revokes an operator approval
	// POST /api/v1/approvals/operator
	SetApprovalForAll(c *gin.Context)

	// Burn destroys a token
	// POST /api/v1/burns
	Burn(c *gin.Context)

	// Loan lends a token to a borrower
	// POST /api/v1/loans
	Loan(c *gin.Context)

	// RetrieveLoan pulls a loaned token back to the lender
	// POST /api/v1/loans/retrieve
	RetrieveLoan(c *gin.Context)

	// StartStage advances the sale state machine (admin)
	// POST /api/v1/admin/stages/:stage/start
	StartStage(c *gin.Context)

	// SetAllowlistRoot updates the stage-2 Merkle root (admin)
	// PUT /api/v1/admin/allowlist-root
	SetAllowlistRoot(c *gin.Context)

	// SetPaused toggles the mint pause flag (admin)
	// PUT /api/v1/admin/paused
	SetPaused(c *gin.Context)

	// Reveal toggles metadata reveal (admin)
	// PUT /api/v1/admin/revealed
	Reveal(c *gin.Context)

	// Withdraw sweeps the vault to the contract owner (admin)
	// POST /api/v1/admin/withdraw
	Withdraw(c *gin.Context)

	// SetRoyaltyRecipient updates the royalty recipient (admin)
	// PUT /api/v1/admin/royalty/recipient
	SetRoyaltyRecipient(c *gin.Context)

	// SetRoyaltyPercentage updates the royalty percentage (admin)
	// PUT /api/v1/admin/royalty/percentage
	SetRoyaltyPercentage(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface against the contract facade
type handler struct {
	debug    bool
	contract *genesis.Contract
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, contract *genesis.Contract) Handler {
	return &handler{
		debug:    debug,
		contract: contract,
	}
}

// buildCall assembles the call descriptor for a state-changing request.
// REST calls are always direct: caller and origin coincide.
func buildCall(fields dto.CallFields) (domain.Call, bool) {
	if !domain.IsEthereumAddress(fields.Caller) {
		return domain.Call{}, false
	}

	value := uint256.NewInt(0)
	if fields.Value != "" {
		parsed, err := uint256.FromDecimal(fields.Value)
		if err != nil {
			return domain.Call{}, false
		}
		value = parsed
	}

	caller := common.HexToAddress(fields.Caller)
	return domain.Call{
		Caller: caller,
		Origin: caller,
		Value:  value,
	}, true
}

func parseTokenID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id", c.Param("id"))
		return 0, false
	}
	return id, true
}

// GetToken retrieves a token's owner, URI, level, and loan state
func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	owner, err := h.contract.OwnerOf(tokenID)
	if err != nil {
		respondContractError(c, err)
		return
	}

	startedAt, err := h.contract.StartTimestamp(tokenID)
	if err != nil {
		respondContractError(c, err)
		return
	}

	uri, err := h.contract.TokenURI(tokenID)
	if err != nil {
		respondContractError(c, err)
		return
	}

	current, total, err := h.contract.GetLevelInfo(tokenID)
	if err != nil {
		respondContractError(c, err)
		return
	}

	resp := dto.TokenResponse{
		TokenID:        tokenID,
		Owner:          owner.Hex(),
		StartTimestamp: startedAt,
		URI:            uri,
		Loaned:         h.contract.Loaned(tokenID),
		CurrentLevel:   current,
		TotalLevel:     total,
	}
	if lender, ok := h.contract.Lender(tokenID); ok {
		resp.Lender = lender.Hex()
	}

	c.JSON(200, resp)
}

// GetSupply reports total and maximum supply
func (h *handler) GetSupply(c *gin.Context) {
	c.JSON(200, dto.SupplyResponse{
		TotalSupply: h.contract.TotalSupply(),
		MaxSupply:   h.contract.MaxSupply(),
	})
}

// GetSale reports the sale state machine
func (h *handler) GetSale(c *gin.Context) {
	c.JSON(200, dto.SaleResponse{
		Stage:         string(h.contract.Stage()),
		Paused:        h.contract.Paused(),
		Revealed:      h.contract.Revealed(),
		AllowlistRoot: h.contract.AllowlistRoot().Hex(),
	})
}

// GetBalance reports an address's live holdings
func (h *handler) GetBalance(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsEthereumAddress(address) {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	balance, err := h.contract.BalanceOf(common.HexToAddress(address))
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.BalanceResponse{
		Address: domain.NormalizeAddress(address),
		Balance: balance,
	})
}

// GetRoyalty reports the royalty split for a sale price
func (h *handler) GetRoyalty(c *gin.Context) {
	raw := c.DefaultQuery("sale_price", "0")
	salePrice, err := uint256.FromDecimal(raw)
	if err != nil {
		respondBadRequest(c, "Invalid sale_price", raw)
		return
	}

	recipient, amount := h.contract.RoyaltyInfo(salePrice)
	c.JSON(200, dto.RoyaltyResponse{
		Recipient: recipient.Hex(),
		Amount:    amount.Dec(),
	})
}

// Mint mints tokens under the active sale stage
func (h *handler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	proof := make([]common.Hash, len(req.Proof))
	for i, p := range req.Proof {
		proof[i] = common.HexToHash(p)
	}

	first, last, err := h.contract.Mint(call, proof, req.Amount)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(201, dto.MintResponse{
		FirstTokenID: first,
		LastTokenID:  last,
		Quantity:     req.Amount,
	})
}

// Transfer moves a token between addresses
func (h *handler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.From) || !domain.IsEthereumAddress(req.To) {
		respondBadRequest(c, "Invalid from or to address")
		return
	}

	from := common.HexToAddress(req.From)
	to := common.HexToAddress(req.To)

	var err error
	if req.Safe {
		err = h.contract.SafeTransferFrom(call, from, to, req.TokenID)
	} else {
		err = h.contract.TransferFrom(call, from, to, req.TokenID)
	}
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// LeveledTransfer moves a leveling token and banks its level
func (h *handler) LeveledTransfer(c *gin.Context) {
	var req dto.LeveledTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.From) || !domain.IsEthereumAddress(req.To) {
		respondBadRequest(c, "Invalid from or to address")
		return
	}

	err := h.contract.LeveledTransfer(call, common.HexToAddress(req.From), common.HexToAddress(req.To), req.TokenID)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// Approve grants a single-token approval
func (h *handler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.To) {
		respondBadRequest(c, "Invalid to address")
		return
	}

	if err := h.contract.Approve(call, common.HexToAddress(req.To), req.TokenID); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// SetApprovalForAll grants or revokes an operator approval
func (h *handler) SetApprovalForAll(c *gin.Context) {
	var req dto.ApprovalForAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.Operator) {
		respondBadRequest(c, "Invalid operator address")
		return
	}

	if err := h.contract.SetApprovalForAll(call, common.HexToAddress(req.Operator), *req.Approved); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// Burn destroys a token
func (h *handler) Burn(c *gin.Context) {
	var req dto.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.Burn(call, req.TokenID); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// Loan lends a token to a borrower
func (h *handler) Loan(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.Receiver) {
		respondBadRequest(c, "Invalid receiver address")
		return
	}

	if err := h.contract.Loan(call, req.TokenID, common.HexToAddress(req.Receiver)); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// RetrieveLoan pulls a loaned token back to the lender
func (h *handler) RetrieveLoan(c *gin.Context) {
	var req dto.RetrieveLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.RetrieveLoan(call, req.TokenID); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// StartStage advances the sale state machine
func (h *handler) StartStage(c *gin.Context) {
	var req dto.CallFields
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	var err error
	switch c.Param("stage") {
	case "1":
		err = h.contract.StartStage1(call)
	case "2":
		err = h.contract.StartStage2(call)
	case "3":
		err = h.contract.StartStage3(call)
	default:
		respondBadRequest(c, "Invalid stage", c.Param("stage"))
		return
	}
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// SetAllowlistRoot updates the stage-2 Merkle root
func (h *handler) SetAllowlistRoot(c *gin.Context) {
	var req dto.RootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.SetAllowlistRoot(call, common.HexToHash(req.Root)); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// SetPaused toggles the mint pause flag
func (h *handler) SetPaused(c *gin.Context) {
	var req dto.FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.SetPaused(call, *req.Enabled); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// Reveal toggles metadata reveal
func (h *handler) Reveal(c *gin.Context) {
	var req dto.FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.Reveal(call, *req.Enabled); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// Withdraw sweeps the vault to the contract owner
func (h *handler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	amount, err := h.contract.Withdraw(call)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.WithdrawResponse{Amount: amount.Dec()})
}

// SetRoyaltyRecipient updates the royalty recipient
func (h *handler) SetRoyaltyRecipient(c *gin.Context) {
	var req dto.RoyaltyRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}
	if !domain.IsEthereumAddress(req.Recipient) {
		respondBadRequest(c, "Invalid recipient address")
		return
	}

	if err := h.contract.ChangeRoyaltyRecipient(call, common.HexToAddress(req.Recipient)); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// SetRoyaltyPercentage updates the royalty percentage
func (h *handler) SetRoyaltyPercentage(c *gin.Context) {
	var req dto.RoyaltyPercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call, ok := buildCall(req.CallFields)
	if !ok {
		respondBadRequest(c, "Invalid caller or value")
		return
	}

	if err := h.contract.ChangeRoyaltyPercentage(call, *req.Percentage); err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(200, dto.OK())
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}
