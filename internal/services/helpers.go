package services

import "fmt"

// Typed accessors for the global registry. Commands use these instead of
// casting registry lookups by hand.

// GetGlobalConfigService returns the global config service.
func GetGlobalConfigService() (*ConfigService, error) {
	service, err := GetGlobalRegistry().GetService("config")
	if err != nil {
		return nil, err
	}
	cfg, ok := service.(*ConfigService)
	if !ok {
		return nil, fmt.Errorf("service config has unexpected type")
	}
	return cfg, nil
}

// GetGlobalAliasService returns the global alias service.
func GetGlobalAliasService() (*AliasService, error) {
	service, err := GetGlobalRegistry().GetService("alias")
	if err != nil {
		return nil, err
	}
	aliases, ok := service.(*AliasService)
	if !ok {
		return nil, fmt.Errorf("service alias has unexpected type")
	}
	return aliases, nil
}

// GetGlobalMacroService returns the global macro service.
func GetGlobalMacroService() (*MacroService, error) {
	service, err := GetGlobalRegistry().GetService("macro")
	if err != nil {
		return nil, err
	}
	macros, ok := service.(*MacroService)
	if !ok {
		return nil, fmt.Errorf("service macro has unexpected type")
	}
	return macros, nil
}

// GetGlobalConfirmService returns the global confirmation gate.
func GetGlobalConfirmService() (*ConfirmService, error) {
	service, err := GetGlobalRegistry().GetService("confirm")
	if err != nil {
		return nil, err
	}
	confirm, ok := service.(*ConfirmService)
	if !ok {
		return nil, fmt.Errorf("service confirm has unexpected type")
	}
	return confirm, nil
}

// GetGlobalUndoService returns the global undo service.
func GetGlobalUndoService() (*UndoService, error) {
	service, err := GetGlobalRegistry().GetService("undo")
	if err != nil {
		return nil, err
	}
	undo, ok := service.(*UndoService)
	if !ok {
		return nil, fmt.Errorf("service undo has unexpected type")
	}
	return undo, nil
}

// GetGlobalTrashService returns the global trash service.
func GetGlobalTrashService() (*TrashService, error) {
	service, err := GetGlobalRegistry().GetService("trash")
	if err != nil {
		return nil, err
	}
	trash, ok := service.(*TrashService)
	if !ok {
		return nil, fmt.Errorf("service trash has unexpected type")
	}
	return trash, nil
}

// GetGlobalExecutorService returns the global executor service.
func GetGlobalExecutorService() (*ExecutorService, error) {
	service, err := GetGlobalRegistry().GetService("executor")
	if err != nil {
		return nil, err
	}
	executor, ok := service.(*ExecutorService)
	if !ok {
		return nil, fmt.Errorf("service executor has unexpected type")
	}
	return executor, nil
}

// GetGlobalWorkerService returns the global worker service.
func GetGlobalWorkerService() (*WorkerService, error) {
	service, err := GetGlobalRegistry().GetService("worker")
	if err != nil {
		return nil, err
	}
	worker, ok := service.(*WorkerService)
	if !ok {
		return nil, fmt.Errorf("service worker has unexpected type")
	}
	return worker, nil
}
