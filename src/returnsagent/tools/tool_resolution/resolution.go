package tool_resolution

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Tool name constants
const (
	ProcessReturnName       = "process_return"
	ProcessExchangeName     = "process_exchange"
	DetermineResolutionName = "determine_resolution"
)

const processReturnPrompt = `Resolution Agent: Executes a return transaction in the database. ONLY call this after the user has confirmed specific details about the issue and agreed to proceed.`

const processExchangePrompt = `Resolution Agent: Executes an exchange in the database.`

const determineResolutionPrompt = `Resolution Agent: Calculates the final decision from the vision findings, policy outcome, and the customer's request.`

// ProcessReturnInput represents the parameters for process_return
type ProcessReturnInput struct {
	OrderID    string `json:"order_id" required:"true" description:"The order ID to return"`
	Reason     string `json:"reason" required:"true" description:"The confirmed return reason"`
	ApprovedBy string `json:"approved_by" description:"Name of the resolution agent approving this"`
}

// ProcessReturnOutput represents the response from process_return
type ProcessReturnOutput struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	OrderStatus   string `json:"order_status"`
}

// ProcessExchangeInput represents the parameters for process_exchange
type ProcessExchangeInput struct {
	OrderID            string `json:"order_id" required:"true" description:"The order ID to exchange"`
	NewItemDescription string `json:"new_item_description" required:"true" description:"What the customer wants instead"`
}

// ProcessExchangeOutput represents the response from process_exchange
type ProcessExchangeOutput struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	OrderStatus   string `json:"order_status"`
}

// DetermineResolutionInput represents the parameters for determine_resolution
type DetermineResolutionInput struct {
	OrderID         string `json:"order_id" description:"The order under discussion, for refund calculation"`
	Findings        string `json:"findings" required:"true" description:"Vision/diagnostic findings"`
	PolicyOutcome   string `json:"policy_outcome" required:"true" description:"The policy agent's decision"`
	CustomerRequest string `json:"customer_request" required:"true" description:"What the customer asked for"`
}

// DetermineResolutionOutput represents the response from determine_resolution
type DetermineResolutionOutput struct {
	Resolution   string  `json:"resolution" description:"refund, exchange, or review"`
	Summary      string  `json:"summary"`
	RefundAmount float64 `json:"refund_amount,omitempty"`
}

// ProcessReturnTool returns the process_return tool definition.
func ProcessReturnTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(ProcessReturnName, processReturnPrompt, makeProcessReturnHandler(store, userID))
}

// ProcessExchangeTool returns the process_exchange tool definition.
func ProcessExchangeTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(ProcessExchangeName, processExchangePrompt, makeProcessExchangeHandler(store, userID))
}

// DetermineResolutionTool returns the determine_resolution tool definition.
func DetermineResolutionTool(store storage.ExecQuerier) (agent.Tool, error) {
	return agent.NewGenericTool(DetermineResolutionName, determineResolutionPrompt, makeDetermineResolutionHandler(store))
}

// lookupOrder fetches an order and checks ownership.
func lookupOrder(ctx context.Context, store storage.ExecQuerier, orderID, userID string) (*storage.Order, error) {
	order, err := storage.GetOrder(ctx, store, orderID)
	if err != nil {
		return nil, toolsutil.BackendError("getting order", err)
	}
	if order == nil || (userID != "" && order.UserID != userID) {
		return nil, toolsutil.NotFoundError("order", orderID)
	}
	return order, nil
}

func makeProcessReturnHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input ProcessReturnInput) (ProcessReturnOutput, error) {
	return func(ctx context.Context, input ProcessReturnInput) (ProcessReturnOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("processing return", "order_id", input.OrderID, "reason", input.Reason)

		order, err := lookupOrder(ctx, store, input.OrderID, userID)
		if err != nil {
			return ProcessReturnOutput{}, err
		}

		// A second call while a return is active hands back the existing
		// transaction rather than minting another.
		if active, err := storage.ActiveReturnForOrder(ctx, store, order.ID); err != nil {
			return ProcessReturnOutput{}, toolsutil.BackendError("checking active returns", err)
		} else if active != nil && active.Kind == storage.ReturnKindReturn {
			logger.Info("return already active, reusing transaction", "order_id", order.ID, "txn", active.ID)
			return ProcessReturnOutput{
				TransactionID: active.ID,
				Status:        "approved",
				OrderStatus:   string(order.Status),
			}, nil
		}

		ok, err := storage.UpdateOrderStatus(ctx, store, order.ID, storage.StatusReturnInitiated)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidTransition) {
				return ProcessReturnOutput{}, toolsutil.ValidationError(
					fmt.Sprintf("order %s is %s and cannot start a return", order.ID, order.Status))
			}
			return ProcessReturnOutput{}, toolsutil.BackendError("updating order status", err)
		}
		if !ok {
			return ProcessReturnOutput{}, toolsutil.NotFoundError("order", order.ID)
		}

		txn := &storage.ReturnTransaction{
			OrderID:    order.ID,
			Kind:       storage.ReturnKindReturn,
			Reason:     input.Reason,
			ApprovedBy: input.ApprovedBy,
		}
		if err := storage.CreateReturn(ctx, store, txn); err != nil {
			return ProcessReturnOutput{}, toolsutil.BackendError("creating return transaction", err)
		}

		return ProcessReturnOutput{
			TransactionID: txn.ID,
			Status:        "approved",
			OrderStatus:   string(storage.StatusReturnInitiated),
		}, nil
	}
}

func makeProcessExchangeHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input ProcessExchangeInput) (ProcessExchangeOutput, error) {
	return func(ctx context.Context, input ProcessExchangeInput) (ProcessExchangeOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("processing exchange", "order_id", input.OrderID)

		order, err := lookupOrder(ctx, store, input.OrderID, userID)
		if err != nil {
			return ProcessExchangeOutput{}, err
		}

		if active, err := storage.ActiveReturnForOrder(ctx, store, order.ID); err != nil {
			return ProcessExchangeOutput{}, toolsutil.BackendError("checking active returns", err)
		} else if active != nil && active.Kind == storage.ReturnKindExchange {
			return ProcessExchangeOutput{
				TransactionID: active.ID,
				Status:        "approved",
				OrderStatus:   string(order.Status),
			}, nil
		}

		ok, err := storage.UpdateOrderStatus(ctx, store, order.ID, storage.StatusExchangeInitiated)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidTransition) {
				return ProcessExchangeOutput{}, toolsutil.ValidationError(
					fmt.Sprintf("order %s is %s and cannot start an exchange", order.ID, order.Status))
			}
			return ProcessExchangeOutput{}, toolsutil.BackendError("updating order status", err)
		}
		if !ok {
			return ProcessExchangeOutput{}, toolsutil.NotFoundError("order", order.ID)
		}

		txn := &storage.ReturnTransaction{
			OrderID: order.ID,
			Kind:    storage.ReturnKindExchange,
			Reason:  "Exchange: " + input.NewItemDescription,
		}
		if err := storage.CreateReturn(ctx, store, txn); err != nil {
			return ProcessExchangeOutput{}, toolsutil.BackendError("creating exchange transaction", err)
		}

		return ProcessExchangeOutput{
			TransactionID: txn.ID,
			Status:        "approved",
			OrderStatus:   string(storage.StatusExchangeInitiated),
		}, nil
	}
}

func makeDetermineResolutionHandler(store storage.ExecQuerier) func(ctx context.Context, input DetermineResolutionInput) (DetermineResolutionOutput, error) {
	return func(ctx context.Context, input DetermineResolutionInput) (DetermineResolutionOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("determining resolution", "policy_outcome", input.PolicyOutcome)

		request := strings.ToLower(input.CustomerRequest)
		outcome := strings.ToLower(input.PolicyOutcome)

		resolution := "review"
		switch {
		case strings.Contains(outcome, "review"):
			resolution = "review"
		case strings.Contains(request, "exchange"):
			resolution = "exchange"
		case strings.Contains(outcome, "refund") || strings.Contains(request, "refund") || strings.Contains(request, "return"):
			resolution = "refund"
		}

		out := DetermineResolutionOutput{
			Resolution: resolution,
			Summary: fmt.Sprintf("Findings: %s. Policy: %s. Decision: %s.",
				input.Findings, input.PolicyOutcome, resolution),
		}

		// Refunds are for the order's full line total.
		if resolution == "refund" && input.OrderID != "" {
			order, err := storage.GetOrder(ctx, store, input.OrderID)
			if err != nil {
				return DetermineResolutionOutput{}, toolsutil.BackendError("getting order", err)
			}
			if order != nil {
				out.RefundAmount = order.Total()
			}
		}

		return out, nil
	}
}
